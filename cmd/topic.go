package cmd

import (
	"context"
	"flag"

	"github.com/etnz/purse/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "print help topics" }
func (*topicCmd) Usage() string {
	return `purse topic [<topic>...]

  Prints the given help topics, or the list of topics. Use '*' for all of them.
`
}
func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	md, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func (*topicCmd) PredictArgs() complete.Predictor {
	topics, _ := docs.GetAllTopics()
	return predict.Set(topics)
}
