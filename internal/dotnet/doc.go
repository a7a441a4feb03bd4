// Package dotnet knows the .NET side of the contract: where a solution and
// its test projects live on disk, and how a `dotnet test` command line is
// assembled for a run.
package dotnet
