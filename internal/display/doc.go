// Package display renders user-facing hint blocks for problems that stop a
// run before any test executes.
//
//	hint := display.Warning{
//	    Title:      "No test projects found",
//	    Message:    `Nothing under /src matches "**/*.Test*.csproj".`,
//	    Files:      []string{"src/App/App.csproj"},
//	    FilesLabel: "Project files found",
//	    Suggestion: "Set project_pattern in .dotnet-test/config.yaml",
//	}
//	hint.Display(os.Stderr, true)
//
// Color is applied only when requested; callers decide based on whether
// the destination is a terminal.
package display
