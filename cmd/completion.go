package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	statements := predict.Files("*.csv")
	severities := predict.Set{"info", "warning", "error"}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"parse": {
				Flags: map[string]complete.Predictor{
					"f": predict.Set{"json", "yaml", "dump"},
					"q": predict.Something,
				},
				Args: statements,
			},
			"check": {
				Flags: map[string]complete.Predictor{
					"strict":    predict.Nothing,
					"tolerance": predict.Something,
					"level":     severities,
				},
				Args: statements,
			},
			"report": {
				Flags: map[string]complete.Predictor{
					"html":    predict.Files("*.html"),
					"raw":     predict.Nothing,
					"summary": predict.Nothing,
					"level":   severities,
				},
				Args: statements,
			},
			"topic": {
				Flags: map[string]complete.Predictor{
					"list": predict.Nothing,
					"raw":  predict.Nothing,
				},
				Args: predict.Set(topicNames()),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
