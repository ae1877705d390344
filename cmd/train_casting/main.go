package main

import "bufio"
import "context"
import "flag"
import "fmt"
import "log"
import "math/rand"
import "os"
import "os/signal"
import "strings"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/datasets"
import "github.com/neurlang/castrank/datasets/casting"
import "github.com/neurlang/castrank/engine"
import "github.com/neurlang/castrank/loss"
import "github.com/neurlang/castrank/net/loader"
import "github.com/neurlang/castrank/net/network"
import "github.com/neurlang/castrank/reconcile"
import "github.com/neurlang/castrank/trainer"

// taste of the simulated director, acting matters most
func taste(show *casting.Show) []float64 {
	t := make([]float64, show.Len())
	t[0] = 1
	for c, w := range []float64{0.5, 3, 1} {
		t[1+c] = w
		t[1+len(show.Criteria)+c] = -0.2
	}
	return t
}

func confirmer(yes bool) reconcile.Confirm {
	in := bufio.NewReader(os.Stdin)
	return func(message string) bool {
		fmt.Println(message)
		if yes {
			fmt.Println("y")
			return true
		}
		fmt.Print("[y/N] ")
		answer, _ := in.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

func main() {
	dstmodel := flag.String("dstmodel", "", "model destination .txt.lzw file")
	resume := flag.Bool("resume", false, "resume training of a deep model from dstmodel")
	kind := flag.String("engine", "neural", "engine: weighted, neural or deep")
	reload := flag.String("reload", "always", "reload policy: always, onchange or refused")
	applicants := flag.Int("applicants", 12, "applicants per audition")
	rounds := flag.Int("rounds", 3, "audition rounds")
	iterations := flag.Int("iterations", 500, "maximum epochs per round")
	threshold := flag.Float64("threshold", 0.01, "stop once every pair loss is below this")
	rate := flag.Float64("rate", 0.5, "learning rate")
	seed := flag.Int64("seed", 1, "random seed")
	yes := flag.Bool("yes", false, "accept every proposed change")
	role := flag.Bool("role", false, "train on the last cast role only")
	stockpile := flag.Bool("stockpile", false, "keep training on earlier rounds")
	logfile := flag.String("log", "", "append training progress to this file")
	flag.Bool("pgo", false, "enable pgo")
	flag.Parse()

	k, err := engine.ParseKind(*kind)
	if err != nil {
		log.Fatal(err)
	}
	policy, err := reconcile.ParseReloadPolicy(*reload)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	show := casting.Sample(*applicants, rng)
	director := casting.Director{Taste: taste(show)}

	cfg := engine.Config[*casting.Applicant, string]{
		Kind:       k,
		Encoder:    show.Encoder(),
		ID:         casting.ID,
		Parameters: show,
		Policy:     policy,
		Confirm:    confirmer(*yes),
		Hyper:      trainer.HyperParameters{MaxIterations: *iterations, LossThreshold: *threshold},
		Options: network.Options{
			LearningRate: *rate,
			Loss:         loss.New(loss.MeanSquaredError),
			Rand:         rng,
		},
		Hidden:     []int{8},
		Activation: activation.New(activation.Tanh),
		Logger:     log.New(os.Stderr, "", log.LstdFlags),
	}
	if *role {
		cfg.Scope = engine.RoleScope
	}
	cfg.Hyper.SetLogger(cfg.Logger)
	if *logfile != "" {
		if err := cfg.Hyper.SetLogFile(*logfile); err != nil {
			log.Fatal(err)
		}
		cfg.Hyper.LogEvery = 50
	}
	if k == engine.Deep {
		cfg.Network, err = trainer.Resume(*resume, *dstmodel, func() network.Network { return nil })
		if err != nil {
			log.Fatal(err)
		}
	}

	e, err := engine.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	policyOfSession := datasets.Clear
	if *stockpile {
		policyOfSession = datasets.Stockpile
	}
	session := datasets.NewSession(policyOfSession)

	export := func(round int) {
		report, err := e.ExportChanges(ctx, session)
		if err != nil {
			log.Fatalf("round %d: %v", round, err)
		}
		fmt.Printf("round %d: %d pairs, %s\n", round, report.Pairs, report.Montage.String())
		if report.Outcome.Proposed {
			fmt.Printf("round %d: confirmed %v, reloaded %v\n", round, report.Outcome.Confirmed, report.Outcome.Reloaded)
		}
	}

	for round := 1; round <= *rounds; round++ {
		show.Applicants = casting.Sample(*applicants, rng).Applicants
		fmt.Printf("round %d: agreement with director %.2f\n", round, agreement(e, director, show))
		for _, r := range show.Roles {
			picked, notPicked := director.Pick(show, r.Name)
			e.UserDecision(session, picked, notPicked, r.Name)
			show.Cast(r.Name, picked...)
			// role scoped engines train each role on its own
			if *role {
				export(round)
			}
		}
		if !*role {
			export(round)
		}
	}
	for i := 0; i < show.Len(); i++ {
		p := show.Parameter(i)
		fmt.Printf("%-12s %-11s %.3f\n", p.Name, p.Kind, p.Value)
	}

	if *dstmodel == "" {
		return
	}
	l, ok := e.(engine.Learner)
	if !ok {
		fmt.Println("engine", k, "has no model to save")
		return
	}
	if err := loader.SaveFile(*dstmodel, l.Network()); err != nil {
		log.Fatal(err)
	}
}

// agreement is the share of ordered applicant pairs the engine ranks like the director
func agreement(e engine.SuitabilityEngine[*casting.Applicant, string], d casting.Director, show *casting.Show) float64 {
	var same, all int
	for _, r := range show.Roles {
		for _, a := range show.Applicants {
			for _, b := range show.Applicants {
				if a == b {
					continue
				}
				want := d.Score(show, a, r.Name) > d.Score(show, b, r.Name)
				all++
				if (e.Compare(a, b, r.Name) > 0) == want {
					same++
				}
			}
		}
	}
	if all == 0 {
		return 0
	}
	return float64(same) / float64(all)
}
