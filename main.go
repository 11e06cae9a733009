package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BishwajeetPatel/task-glitch/internal/export"
	"github.com/BishwajeetPatel/task-glitch/internal/repository"
	"github.com/BishwajeetPatel/task-glitch/internal/seed"
	"github.com/BishwajeetPatel/task-glitch/internal/service"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// undoWindow is how long a deleted task stays restorable.
const undoWindow = 4 * time.Second

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	source := os.Getenv("TASK_GLITCH_SEED")
	if source == "" {
		source = "tasks.json"
	}

	db, err := repository.InitDB(":memory:")
	if err != nil {
		log.Fatal("Error initializing DB:", err)
	}
	defer db.Close()

	svc := service.NewTaskService(repository.NewTaskRepository(db), seed.NewLoader(source))
	defer svc.Close()

	if err := svc.Load(context.Background()); err != nil {
		log.Fatal("Error loading seed data: ", err)
	}

	fmt.Println("task-glitch — ROI-driven task board")
	fmt.Println("Commands:")
	fmt.Println("   list")
	fmt.Println("   add <revenue> <time> <title...>")
	fmt.Println("   edit <id> <title|revenue|time|status|priority> <value...>")
	fmt.Println("   del <id>")
	fmt.Println("   undo")
	fmt.Println("   search <text...>   (empty clears)")
	fmt.Println("   status <todo|in-progress|done|all>")
	fmt.Println("   priority <low|medium|high|all>")
	fmt.Println("   export <file>")
	fmt.Println("   quit")

	a := &app{service: svc}
	a.list()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		a.run(fields[0], fields[1:])
	}
}

type app struct {
	service   *service.TaskService
	criteria  service.Criteria
	undoTimer *time.Timer
}

func (a *app) run(cmd string, args []string) {
	switch cmd {
	case "list":
		a.list()
	case "add":
		a.add(args)
	case "edit":
		a.edit(args)
	case "del":
		a.del(args)
	case "undo":
		a.undo()
	case "search":
		a.criteria.Search = strings.Join(args, " ")
		a.list()
	case "status":
		a.criteria.Status = strings.Join(args, " ")
		a.list()
	case "priority":
		a.criteria.Priority = strings.Join(args, " ")
		a.list()
	case "export":
		a.export(args)
	default:
		fmt.Println("Unknown command:", cmd)
	}
}

func (a *app) list() {
	view, err := a.service.DerivedView(a.criteria)
	if err != nil {
		log.Println(err)
		return
	}

	if len(view) == 0 {
		fmt.Println("No tasks match.")
		return
	}

	fmt.Printf("%-38s %-28s %10s %8s %12s %8s %10s\n", "ID", "TITLE", "REVENUE", "TIME", "STATUS", "PRIO", "ROI")
	for _, t := range view {
		roi := "—"
		if t.ROI != nil {
			roi = humanize.CommafWithDigits(*t.ROI, 2)
		}
		fmt.Printf("%-38s %-28s %10s %8s %12s %8s %10s\n",
			t.ID,
			t.Title,
			humanize.CommafWithDigits(t.Revenue, 2),
			humanize.CommafWithDigits(t.TimeTaken, 2),
			t.Status,
			t.Priority,
			roi,
		)
	}
}

func (a *app) add(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: add <revenue> <time> <title...>")
		return
	}
	revenue, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Println("Bad revenue:", args[0])
		return
	}
	timeTaken, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("Bad time:", args[1])
		return
	}

	task, err := a.service.AddTask(service.TaskInput{
		Title:     strings.Join(args[2:], " "),
		Revenue:   revenue,
		TimeTaken: timeTaken,
	})
	if err != nil {
		log.Println(err)
		return
	}
	fmt.Printf("Added %q (%s)\n", task.Title, task.ID)
	a.list()
}

func (a *app) edit(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: edit <id> <field> <value...>")
		return
	}
	id, field, value := args[0], args[1], strings.Join(args[2:], " ")

	var patch service.TaskPatch
	switch field {
	case "title":
		patch.Title = &value
	case "revenue", "time":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Println("Bad number:", value)
			return
		}
		if field == "revenue" {
			patch.Revenue = &n
		} else {
			patch.TimeTaken = &n
		}
	case "status":
		patch.Status = &value
	case "priority":
		patch.Priority = &value
	default:
		fmt.Println("Unknown field:", field)
		return
	}

	ok, err := a.service.UpdateTask(id, patch)
	if err != nil {
		log.Println(err)
		return
	}
	if !ok {
		fmt.Println("No task with id", id)
		return
	}
	a.list()
}

func (a *app) del(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: del <id>")
		return
	}

	ok, err := a.service.DeleteTask(args[0])
	if err != nil {
		log.Println(err)
		return
	}
	if !ok {
		fmt.Println("No task with id", args[0])
		return
	}

	// Re-arm the undo affordance; once it fires, the slot is gone for good.
	if a.undoTimer != nil {
		a.undoTimer.Stop()
	}
	a.undoTimer = time.AfterFunc(undoWindow, a.service.ClearUndo)

	if task, ok := a.service.PendingUndo(); ok {
		fmt.Printf("Deleted %q — type undo within %s to restore\n", task.Title, undoWindow)
	}
}

func (a *app) undo() {
	ok, err := a.service.UndoDelete()
	if err != nil {
		log.Println(err)
		return
	}
	if !ok {
		fmt.Println("Nothing to undo.")
		return
	}
	if a.undoTimer != nil {
		a.undoTimer.Stop()
		a.undoTimer = nil
	}
	fmt.Println("Restored.")
	a.list()
}

func (a *app) export(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: export <file>")
		return
	}

	view, err := a.service.DerivedView(a.criteria)
	if err != nil {
		log.Println(err)
		return
	}

	f, err := os.Create(args[0])
	if err != nil {
		log.Println(err)
		return
	}
	defer f.Close()

	if err := export.WriteCSV(f, view); err != nil {
		log.Println(err)
		return
	}
	fmt.Printf("Exported %d tasks to %s\n", len(view), args[0])
}
