package main

import "flag"
import "fmt"
import "log"
import "math/rand"
import "strings"

import "github.com/neurlang/castrank/comparator"
import "github.com/neurlang/castrank/datasets/casting"
import "github.com/neurlang/castrank/net/loader"

func main() {
	srcmodel := flag.String("srcmodel", "", "model source .txt.lzw file")
	applicants := flag.Int("applicants", 8, "applicants to rank")
	seed := flag.Int64("seed", 2, "random seed of the audition")
	role := flag.String("role", "", "rank for this role only")
	flag.Parse()

	if *srcmodel == "" {
		log.Fatal("-srcmodel is required")
	}
	net, err := loader.LoadFile(*srcmodel)
	if err != nil {
		log.Fatal(err)
	}
	show := casting.Sample(*applicants, rand.New(rand.NewSource(*seed)))
	enc := show.Encoder()
	if net.Inputs() != enc.Width() || net.Outputs() != 1 {
		log.Fatalf("model %dx%d does not rank %d wide pairs", net.Inputs(), net.Outputs(), enc.Width())
	}
	cmp := comparator.New(net, enc)

	for _, r := range show.Roles {
		if *role != "" && r.Name != *role {
			continue
		}
		cached := comparator.NewCached(cmp, r.Name, casting.ID)
		ranked, disagreements := comparator.DisagreementSort(show.Applicants, cached.Compare)
		fmt.Printf("%s (%d disagreements)\n", r.Name, disagreements)
		for i, a := range ranked {
			fmt.Printf("%3d. %s\n", i+1, strings.Join(enc.Describe(a, r.Name), ", "))
		}
	}
}
