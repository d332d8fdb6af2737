package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/localrivet/edmundson/internal/document"
	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/profilestore"
	"github.com/localrivet/edmundson/internal/summarizer"
)

var (
	countFlag = &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Usage:   "Number of sentences in the summary",
	}

	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Stored word profile to use",
	}

	wordsFileFlag = &cli.StringFlag{
		Name:  "words",
		Usage: "YAML or JSON file with bonus, stigma and null word lists",
	}

	bonusFlag = &cli.StringSliceFlag{
		Name:  "bonus",
		Usage: "Bonus words (repeatable, replaces the profile list)",
	}

	stigmaFlag = &cli.StringSliceFlag{
		Name:  "stigma",
		Usage: "Stigma words (repeatable, replaces the profile list)",
	}

	nullFlag = &cli.StringSliceFlag{
		Name:  "null",
		Usage: "Null words (repeatable, replaces the profile list)",
	}

	bonusValueFlag = &cli.FloatFlag{
		Name:  "bonus-value",
		Usage: "Cue method weight of bonus words",
	}

	stigmaValueFlag = &cli.FloatFlag{
		Name:  "stigma-value",
		Usage: "Cue method weight of stigma words",
	}

	weightFlag = &cli.FloatFlag{
		Name:  "weight",
		Usage: "Key method significance threshold",
	}

	stemmerFlag = &cli.StringFlag{
		Name:  "stemmer",
		Usage: "Word stemmer [null, lowercase, snowball]",
	}

	languageFlag = &cli.StringFlag{
		Name:  "language",
		Usage: "Stemmer language",
	}

	scoresFlag = &cli.BoolFlag{
		Name:  "scores",
		Usage: "Print the rating of every sentence",
	}

	commonSummarizeFlags = []cli.Flag{
		countFlag,
		profileFlag,
		wordsFileFlag,
		bonusFlag,
		nullFlag,
		stemmerFlag,
		languageFlag,
		scoresFlag,
	}

	cueCmd = &cli.Command{
		Name:      summarizer.MethodCue,
		Usage:     "Summarize with the cue method (bonus and stigma words)",
		ArgsUsage: "[file|-]",
		UsageText: `edmundson cue --bonus significant --bonus important --stigma hardly article.txt
   cat article.txt | edmundson cue --profile news -n 5`,
		Action: summarizeAction(summarizer.MethodCue),
		Flags: append([]cli.Flag{
			stigmaFlag,
			bonusValueFlag,
			stigmaValueFlag,
		}, commonSummarizeFlags...),
	}

	keyCmd = &cli.Command{
		Name:      summarizer.MethodKey,
		Usage:     "Summarize with the key method (frequent bonus words)",
		ArgsUsage: "[file|-]",
		UsageText: `edmundson key --bonus revenue --bonus growth --weight 0.3 report.txt`,
		Action:    summarizeAction(summarizer.MethodKey),
		Flags: append([]cli.Flag{
			weightFlag,
		}, commonSummarizeFlags...),
	}
)

type ratingOutput struct {
	Order    int     `json:"order" yaml:"order"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Selected bool    `json:"selected" yaml:"selected"`
	Sentence string  `json:"sentence" yaml:"sentence"`
}

type summaryOutput struct {
	Method    string         `json:"method" yaml:"method"`
	Sentences []string       `json:"sentences" yaml:"sentences"`
	Ratings   []ratingOutput `json:"ratings,omitempty" yaml:"ratings,omitempty"`
}

func summarizeAction(method string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		text, err := readInput(cmd.Args().First(), os.Stdin)
		if err != nil {
			return err
		}

		opts, err := summarizeOptions(cmd, method)
		if err != nil {
			return err
		}

		summ := summarizer.NewTextSummarizer(opts, nil, app.Logger)
		if err := summ.Initialize(); err != nil {
			return err
		}

		result, err := summ.Run(text, opts)
		if err != nil {
			return err
		}

		return printSummary(result, cmd.Bool(scoresFlag.Name))
	}
}

// summarizeOptions layers the configuration, the word sources and the
// command flags, in that order.
func summarizeOptions(cmd *cli.Command, method string) (summarizer.Options, error) {
	opts := app.Config.SummarizerOptions()
	opts.Method = method

	if cmd.IsSet(countFlag.Name) {
		opts.SentencesCount = int(cmd.Int(countFlag.Name))
	}
	if cmd.IsSet(bonusValueFlag.Name) {
		opts.BonusWordValue = cmd.Float(bonusValueFlag.Name)
	}
	if cmd.IsSet(stigmaValueFlag.Name) {
		opts.StigmaWordValue = cmd.Float(stigmaValueFlag.Name)
	}
	if cmd.IsSet(weightFlag.Name) {
		opts.Weight = cmd.Float(weightFlag.Name)
	}
	if s := cmd.String(stemmerFlag.Name); s != "" {
		opts.Stemmer = s
	}
	if l := cmd.String(languageFlag.Name); l != "" {
		opts.Language = l
	}

	words, err := wordSources(cmd)
	if err != nil {
		return opts, err
	}
	opts.Words = mergeWords(words,
		cmd.StringSlice(bonusFlag.Name),
		cmd.StringSlice(stigmaFlag.Name),
		cmd.StringSlice(nullFlag.Name))
	return opts, nil
}

// wordSources returns the word lists of --words or --profile. Without either
// and without inline words, the configured default profile is used.
func wordSources(cmd *cli.Command) (summarizer.WordLists, error) {
	if path := cmd.String(wordsFileFlag.Name); path != "" {
		p, err := profilestore.LoadProfileFile(path)
		if err != nil {
			return summarizer.WordLists{}, err
		}
		return p.Words(), nil
	}

	name := cmd.String(profileFlag.Name)
	inline := len(cmd.StringSlice(bonusFlag.Name)) > 0 ||
		len(cmd.StringSlice(stigmaFlag.Name)) > 0 ||
		len(cmd.StringSlice(nullFlag.Name)) > 0
	if name == "" && !inline {
		name = app.Config.Summarizer.Profile
	}
	if name == "" {
		return summarizer.WordLists{}, nil
	}

	store, err := openStore()
	if err != nil {
		return summarizer.WordLists{}, err
	}
	defer store.Close()

	p, err := store.Load(name)
	if err != nil {
		return summarizer.WordLists{}, err
	}
	app.Logger.Debug("Using word profile", "name", p.Name, "revision", p.Revision)
	return p.Words(), nil
}

// mergeWords replaces each list of base by its non-empty override.
func mergeWords(base summarizer.WordLists, bonus, stigma, null []string) summarizer.WordLists {
	if len(bonus) > 0 {
		base.Bonus = bonus
	}
	if len(stigma) > 0 {
		base.Stigma = stigma
	}
	if len(null) > 0 {
		base.Null = null
	}
	return base
}

// readInput reads the file at path, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errortypes.ValidationError(err, "failed to read input text").WithField("path", path)
	}
	return string(data), nil
}

func summaryResult(result *summarizer.Result, scores bool) summaryOutput {
	out := summaryOutput{
		Method:    result.Method,
		Sentences: document.Texts(result.Sentences),
	}
	if !scores {
		return out
	}

	selected := make(map[document.Sentence]bool, len(result.Sentences))
	for _, s := range result.Sentences {
		selected[s] = true
	}
	for _, r := range result.Ratings {
		out.Ratings = append(out.Ratings, ratingOutput{
			Order:    r.Order,
			Rating:   r.Rating,
			Selected: selected[r.Sentence],
			Sentence: r.Sentence.String(),
		})
	}
	return out
}

func printSummary(result *summarizer.Result, scores bool) error {
	out := summaryResult(result, scores)
	if app.Format != formatText {
		return encode(out)
	}

	if scores {
		for _, r := range out.Ratings {
			mark := " "
			if r.Selected {
				mark = "*"
			}
			fmt.Printf("%s %8.3f  %s\n", mark, r.Rating, r.Sentence)
		}
		return nil
	}

	for _, s := range out.Sentences {
		fmt.Println(s)
	}
	return nil
}
