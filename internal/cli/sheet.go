package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tasky/internal/service"
	"tasky/internal/view"
)

func runNew(args []string, svc service.SheetService) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tasky new \"Sheet title\" [\"description\"]")
		return 1
	}
	title := args[0]
	description := ""
	if len(args) > 1 {
		description = strings.Join(args[1:], " ")
	}

	id := service.Slugify(title)
	if id == "" {
		fmt.Fprintln(os.Stderr, "Error: title produces an empty sheet id")
		return 1
	}

	snap, err := svc.Create(id, title, description)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Created sheet %s\n", id)
	printSnapshot(snap)
	return 0
}

func runList(svc service.SheetService) int {
	infos, err := svc.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(infos) == 0 {
		fmt.Println("No sheets yet. Create one with: tasky new \"Title\"")
		return 0
	}
	for _, info := range infos {
		fmt.Printf("%-20s %s\n", info.ID, info.Title)
	}
	return 0
}

func runOpen(args []string, svc service.SheetService) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tasky open <sheet>")
		return 1
	}
	snap, err := svc.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printSnapshot(snap)
	return 0
}

func runAdd(args []string, svc service.SheetService) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tasky add <sheet> \"item text\"")
		return 1
	}
	id := args[0]
	text := strings.Join(args[1:], " ")

	// Open first so today's entry exists and prior days have rolled.
	snap, err := svc.Open(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	day, ok := todayKey(snap)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: no entry for today")
		return 1
	}
	snap, err = svc.AddItem(id, day, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printSnapshot(snap)
	return 0
}

func runDone(args []string, svc service.SheetService) int {
	return runItemCommand(args, svc, "done", func(id, day, itemID string, _ []string) (view.Snapshot, error) {
		return svc.Toggle(id, day, itemID)
	})
}

func runEdit(args []string, svc service.SheetService) int {
	if len(args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: tasky edit <sheet> <day|today> <position> \"new text\"")
		return 1
	}
	return runItemCommand(args, svc, "edit", func(id, day, itemID string, rest []string) (view.Snapshot, error) {
		return svc.EditText(id, day, itemID, strings.Join(rest, " "))
	})
}

func runRemove(args []string, svc service.SheetService) int {
	return runItemCommand(args, svc, "rm", func(id, day, itemID string, _ []string) (view.Snapshot, error) {
		return svc.RemoveItem(id, day, itemID)
	})
}

// runItemCommand resolves a (sheet, day, 1-based position) triple against
// a fresh snapshot and applies op to the item's stable id.
func runItemCommand(args []string, svc service.SheetService, name string, op func(id, day, itemID string, rest []string) (view.Snapshot, error)) int {
	if len(args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: tasky %s <sheet> <day|today> <position> ...\n", name)
		return 1
	}
	id, dayArg, posArg := args[0], args[1], args[2]
	rest := args[3:]

	snap, err := svc.Open(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	day := dayArg
	if dayArg == "today" {
		var ok bool
		if day, ok = todayKey(snap); !ok {
			fmt.Fprintln(os.Stderr, "Error: no entry for today")
			return 1
		}
	}

	pos, err := strconv.Atoi(posArg)
	if err != nil || pos < 1 {
		fmt.Fprintf(os.Stderr, "Error: position must be a positive number, got %q\n", posArg)
		return 1
	}
	item, ok := snap.ItemAt(day, pos-1)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no item %d on %s\n", pos, day)
		return 1
	}

	snap, err = op(id, day, item.ID, rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printSnapshot(snap)
	return 0
}

func runImport(args []string, svc service.SheetService) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: tasky import <sheet-id> <file.md>")
		return 1
	}
	snap, err := svc.Import(args[0], args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printSnapshot(snap)
	return 0
}

func runDelete(args []string, svc service.SheetService) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tasky delete <sheet>")
		return 1
	}
	if err := svc.Delete(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Deleted sheet %s\n", args[0])
	return 0
}

func todayKey(snap view.Snapshot) (string, bool) {
	for _, d := range snap.Days {
		if d.Today {
			return d.Key, true
		}
	}
	return "", false
}

func printSnapshot(snap view.Snapshot) {
	fmt.Println(snap.Title)
	if snap.Description != "" {
		fmt.Println(snap.Description)
	}
	for _, d := range snap.Days {
		suffix := ""
		if d.Today {
			suffix = " (today)"
		}
		fmt.Printf("\n%s%s\n", d.Display, suffix)
		if len(d.Items) == 0 {
			fmt.Println("  (no items)")
			continue
		}
		for _, it := range d.Items {
			check := " "
			if it.Completed {
				check = "x"
			}
			fmt.Printf("  %d. [%s] %s\n", it.Position+1, check, it.Text)
		}
	}
}
