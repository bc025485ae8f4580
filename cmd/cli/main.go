package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/esi-planning/timetabler/internal/model"
	"github.com/esi-planning/timetabler/internal/pbc"
)

var days = map[int]string{
	0: "Monday",
	1: "Tuesday",
	2: "Wednesday",
	3: "Thursday",
	4: "Friday",
	5: "Saturday",
	6: "Sunday",
}

var solvers = map[string]func() pbc.Solver{
	"gophersat":   pbc.NewGophersatSolver,
	"roundingsat": pbc.NewRoundingsatSolver,
}

type placement struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	Room  string `json:"room"`
}

func main() {
	filePtr := flag.String("file", "", "Path to the input file")
	outPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	solverPtr := flag.String("solver", "gophersat", `Backend to use. Allowed values are: "gophersat" (in-process) and "roundingsat" (external binary), where "gophersat" is the default`)
	configPtr := flag.String("config", "", "Optional horizon config file overriding the default weekly grid")
	biweeklyPtr := flag.Bool("biweekly", false, "Expand the slot grid over the biweekly patterns")
	timeoutPtr := flag.Duration("timeout", 0, "Solve deadline (e.g. 30s); 0 means unbounded")
	verbosePtr := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)

	// Validate arguments
	if *filePtr == "" {
		log.Fatal("an input file must be specified")
	} else if _, ok := solvers[solverStr]; !ok {
		log.Fatalf("%v is not a valid solver", solverStr)
	}

	logger := zap.NewNop()
	if *verbosePtr {
		development, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("cannot initialize logger: %v", err)
		}
		logger = development
		defer logger.Sync()
	}

	// Extract input
	input, err := model.InputFromJSON(*filePtr)
	if err != nil {
		log.Fatalf("cannot load input: %v", err)
	}
	if *configPtr != "" {
		if err := applyHorizonConfig(&input.Horizon, *configPtr); err != nil {
			log.Fatalf("cannot load horizon config: %v", err)
		}
	}
	if *biweeklyPtr {
		input.Horizon.Biweekly = true
	}

	ctx := context.Background()
	if *timeoutPtr > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutPtr)
		defer cancel()
	}

	// Build the schedule
	timetabler := model.NewTimetabler(solvers[solverStr](), logger)
	schedule, err := timetabler.Generate(ctx, input)
	if err != nil {
		log.Fatalf("an error occurred during timetable construction: %v", err)
	}

	switch schedule.Status {
	case model.StatusRejected:
		fmt.Fprintf(os.Stderr, "sessions without any candidate slot/room: %v\n", strings.Join(schedule.Unplaceable, ", "))
		os.Exit(1)
	case model.StatusInfeasible:
		fmt.Println("Infeasible")
		os.Exit(20)
	case model.StatusTimedOut:
		fmt.Println("No schedule proven within the deadline")
		os.Exit(1)
	}

	// Verify schedule correctness
	if !timetabler.Verify(schedule, input) {
		fmt.Fprintln(os.Stderr, "verification failed")
		os.Exit(15)
	}

	// Build output from schedule
	placements := make(map[string]placement, len(schedule.Assignments))
	for id, assignment := range schedule.Assignments {
		placements[id] = placement{
			Day:   assignment.Day,
			Start: clock(assignment.Start),
			Room:  assignment.Room,
		}
	}
	placementsJSON, err := json.Marshal(placements)
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	if *outPtr == "" {
		printTable(schedule, input)
		fmt.Println(string(placementsJSON))
	} else if err := os.WriteFile(*outPtr, placementsJSON, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	fmt.Printf("Objective: %v\n", schedule.Objective)
}

func printTable(schedule model.Schedule, input model.Input) {
	ordered := make([]string, 0, len(schedule.Assignments))
	for id := range schedule.Assignments {
		ordered = append(ordered, id)
	}
	slices.SortFunc(ordered, func(a, b string) int {
		x, y := schedule.Assignments[a], schedule.Assignments[b]
		if x.Day != y.Day {
			return x.Day - y.Day
		}
		if x.Start != y.Start {
			return x.Start - y.Start
		}
		return strings.Compare(a, b)
	})

	sessions := make(map[string]*model.Session, len(input.Sessions))
	for i := range input.Sessions {
		sessions[input.Sessions[i].ID] = &input.Sessions[i]
	}

	for _, id := range ordered {
		assignment := schedule.Assignments[id]
		session := sessions[id]
		fmt.Printf("%v %v | %v (%v) | group %v | %v | room %v\n",
			days[assignment.Day],
			clock(assignment.Start),
			session.Subject,
			session.Type,
			session.Group.GroupID(),
			session.Professor.Name,
			assignment.Room,
		)
	}
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// applyHorizonConfig overrides the default grid with values from a viper
// readable file (yaml/json/toml).
func applyHorizonConfig(horizon *model.Horizon, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("days", horizon.Days)
	v.SetDefault("firstHour", horizon.FirstHour)
	v.SetDefault("lastHour", horizon.LastHour)
	v.SetDefault("lunchHour", horizon.LunchHour)
	v.SetDefault("slotMinutes", horizon.SlotMinutes)
	v.SetDefault("biweekly", horizon.Biweekly)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	horizon.Days = v.GetInt("days")
	horizon.FirstHour = v.GetInt("firstHour")
	horizon.LastHour = v.GetInt("lastHour")
	horizon.LunchHour = v.GetInt("lunchHour")
	horizon.SlotMinutes = v.GetInt("slotMinutes")
	horizon.Biweekly = v.GetBool("biweekly")
	return nil
}
