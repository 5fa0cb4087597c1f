// Package javapoet builds Java source files from an in-memory model.
//
// Types are referenced with TypeName values (primitives, classes, parameterized and array
// types, type variables and wildcards). Method bodies and initializers are CodeBlock
// templates whose placeholders ($L, $S, $T, $N and the layout markers $W, $Z, $>, $<, $[,
// $]) are bound to arguments when the block is built.
//
// Declarations (TypeSpec, FieldSpec, MethodSpec, ParameterSpec, AnnotationSpec) are
// immutable values produced by builders. A JavaFile renders one top-level type in two
// passes: the first pass discards its output and records which classes the file refers
// to, the second writes the file with the import list computed from the first. Classes
// whose simple names collide are never imported and are written fully qualified.
package javapoet
