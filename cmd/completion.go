package cmd

import (
	"flag"

	"github.com/etnz/exalgebra/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var vectorFiles = predict.Or(predict.Files("*.jsonl"), predict.Files("*.csv"))

// Completion returns the shell completion of the application: global flags,
// subcommands and their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, e := range Commands {
		fs := flag.NewFlagSet(e.Cmd.Name(), flag.ContinueOnError)
		e.Cmd.SetFlags(fs)
		root.Sub[e.Cmd.Name()] = &complete.Command{Flags: flagPredictors(fs), Args: vectorFiles}
	}
	root.Sub["topic"].Args = complete.PredictFunc(func(string) []string {
		topics, _ := docs.GetAllTopics()
		return topics
	})
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

// flagPredictors predicts the values of the flags of fs. Boolean flags take
// no value.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = nil
			return
		}
		switch f.Name {
		case "vector-file":
			m[f.Name] = vectorFiles
		case "table", "matrix":
			m[f.Name] = predict.Files("*.csv")
		case "format":
			m[f.Name] = predict.Set{formatJSONL, formatCSV}
		case "leave-zero":
			m[f.Name] = predict.Set{"pos", "neg"}
		default:
			m[f.Name] = predict.Something
		}
	})
	return m
}
