// Package fuzztests houses Go fuzz harnesses for the compilation pipeline
// (source -> lexer -> parser -> codegen). Their goal is to catch panics and
// hangs on arbitrary inputs; diagnostics are expected and ignored.
//
// Корпус: исходники из markdown-кейсов internal/driver/testdata.
package fuzztests
