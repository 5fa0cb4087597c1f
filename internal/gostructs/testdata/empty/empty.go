package empty

type hidden struct{ X int }

var _ = hidden{}
