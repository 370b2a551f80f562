package cli

import (
	"fmt"
	"os"

	"tasky/internal/service"
)

// Run executes the CLI with the given arguments and returns an exit
// code. Commands print a fresh snapshot of the sheet they touched.
func Run(args []string, svc service.SheetService) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "new", "n":
		return runNew(cmdArgs, svc)
	case "list", "ls", "l":
		return runList(svc)
	case "open", "o":
		return runOpen(cmdArgs, svc)
	case "add", "a":
		return runAdd(cmdArgs, svc)
	case "done", "do", "d":
		return runDone(cmdArgs, svc)
	case "edit", "e":
		return runEdit(cmdArgs, svc)
	case "rm", "del":
		return runRemove(cmdArgs, svc)
	case "import":
		return runImport(cmdArgs, svc)
	case "delete":
		return runDelete(cmdArgs, svc)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`tasky - Daily checklist sheets with automatic rollover

Usage: tasky [flags] <command> [arguments]

Commands:
  new, n      Create a sheet
              tasky new "Sheet title" ["description"]

  list, ls    List sheets

  open, o     Open a sheet (rolls unfinished items forward to today)
              tasky open <sheet>

  add, a      Add an item to today's entry
              tasky add <sheet> "item text"

  done, d     Toggle an item's completed state
              tasky done <sheet> <day|today> <position>

  edit, e     Replace an item's text (empty text deletes the item)
              tasky edit <sheet> <day|today> <position> "new text"

  rm          Remove an item
              tasky rm <sheet> <day|today> <position>

  import      Create a sheet from a markdown task list
              tasky import <sheet-id> <file.md>

  delete      Delete a whole sheet

  help        Show this help message

Flags:
  -dir <path>     Data directory (default ~/tasky)
  -store <name>   Storage backend: json or sqlite
  -sheet <id>     Open this sheet directly in the TUI

Running tasky without a command launches the interactive panel.
Positions are the 1-based numbers shown next to items.`)
}
