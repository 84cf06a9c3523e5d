package cmd

import (
	"flag"

	"github.com/etnz/loantracker"
	"github.com/etnz/loantracker/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands and their flags for shell completion.
//
// Ids are predicted from the configured store, so that '-id <TAB>' offers the borrowers.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"store":  predict.Files("*"),
			"driver": predict.Set{"file", "sqlite"},
			"v":      predict.Nothing,
		},
	}
	for _, c := range Commands {
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		settled := c.Name() == "show"
		f.VisitAll(func(fl *flag.Flag) {
			sub.Flags[fl.Name] = predictFlag(fl, settled)
		})
		switch c.Name() {
		case "import":
			sub.Args = predict.Files("*.json")
		case "topic":
			sub.Args = complete.PredictFunc(predictTopics)
		case "query":
			sub.Args = predict.Set{"$.borrowers[*]", "$.settledBorrowers[*]"}
		default:
			sub.Args = predict.Nothing
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// predictFlag returns the predictor of fl. Ids of settled borrowers are predicted only
// when settled is true.
func predictFlag(fl *flag.Flag, settled bool) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "id":
		return complete.PredictFunc(func(prefix string) []string { return predictIDs(settled) })
	case "d":
		return predict.Set{"0d", "-1d", "-1w", "-1m", "-1y"}
	case "o":
		return predict.Files("*.json")
	default:
		return predict.Something
	}
}

// predictIDs returns the ids of the active borrowers, and of the settled ones too if
// settled is true. Completion must stay silent, so any failure predicts nothing.
func predictIDs(settled bool) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil
	}
	defer closeStore()
	snap, err := loantracker.ReadSnapshot(store)
	if err != nil {
		return nil
	}
	borrowers := snap.Borrowers
	if settled {
		borrowers = append(borrowers, snap.SettledBorrowers...)
	}
	var ids []string
	for _, b := range borrowers {
		ids = append(ids, b.ID)
	}
	return ids
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme")
}
