package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/profilestore"
	"github.com/localrivet/edmundson/internal/telemetry"
)

var errProfileName = errors.New("profile name is required")

var (
	profileCmd = &cli.Command{
		Name:            "profile",
		Aliases:         []string{"p"},
		Usage:           "Manage stored word profiles",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Create or replace a word profile",
				ArgsUsage: "<name>",
				UsageText: `edmundson profile save news --bonus significant --stigma hardly
   edmundson profile save finance --words finance.yaml`,
				Action: cmdSaveProfile,
				Flags: []cli.Flag{
					wordsFileFlag,
					bonusFlag,
					stigmaFlag,
					nullFlag,
				},
			},
			{
				Name:      "show",
				Aliases:   []string{"get"},
				Usage:     "Print the word lists of a profile",
				ArgsUsage: "<name>",
				Action:    cmdShowProfile,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List stored profiles",
				Action:  cmdListProfiles,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a profile",
				ArgsUsage: "<name>",
				Action:    cmdDeleteProfile,
			},
		},
	}
)

func openStore() (*profilestore.SQLiteProfileStore, error) {
	store := profilestore.NewSQLiteProfileStore(telemetry.NewMetricsCollector())
	if err := store.Initialize(app.Config.Store.SQLitePath); err != nil {
		return nil, err
	}
	return store, nil
}

func profileName(cmd *cli.Command) (string, error) {
	name := strings.TrimSpace(cmd.Args().First())
	if name == "" {
		return "", errortypes.ValidationError(errProfileName, "usage: "+cmd.FullName()+" "+cmd.ArgsUsage)
	}
	return name, nil
}

func cmdSaveProfile(ctx context.Context, cmd *cli.Command) error {
	name, err := profileName(cmd)
	if err != nil {
		return err
	}

	p := profilestore.Profile{Name: name}
	if path := cmd.String(wordsFileFlag.Name); path != "" {
		p, err = profilestore.LoadProfileFile(path)
		if err != nil {
			return err
		}
		p.Name = name
	}
	words := mergeWords(p.Words(),
		cmd.StringSlice(bonusFlag.Name),
		cmd.StringSlice(stigmaFlag.Name),
		cmd.StringSlice(nullFlag.Name))
	p.Bonus, p.Stigma, p.Null = words.Bonus, words.Stigma, words.Null

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.Save(p)
	if err != nil {
		return err
	}
	app.Logger.Info("Saved word profile", "name", saved.Name, "revision", saved.Revision)

	if app.Format != formatText {
		return encode(saved)
	}
	fmt.Printf("%s %s (bonus: %d, stigma: %d, null: %d)\n",
		saved.Name, saved.Revision, len(saved.Bonus), len(saved.Stigma), len(saved.Null))
	return nil
}

func cmdShowProfile(ctx context.Context, cmd *cli.Command) error {
	name, err := profileName(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Load(name)
	if err != nil {
		return err
	}

	if app.Format != formatText {
		return encode(p)
	}
	fmt.Printf("name:     %s\n", p.Name)
	fmt.Printf("revision: %s\n", p.Revision)
	fmt.Printf("updated:  %s\n", p.UpdatedAt.Format(time.RFC3339))
	fmt.Printf("bonus:    %s\n", strings.Join(p.Bonus, ", "))
	fmt.Printf("stigma:   %s\n", strings.Join(p.Stigma, ", "))
	fmt.Printf("null:     %s\n", strings.Join(p.Null, ", "))
	return nil
}

func cmdListProfiles(ctx context.Context, cmd *cli.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List()
	if err != nil {
		return err
	}

	if app.Format != formatText {
		return encode(summaries)
	}
	for _, s := range summaries {
		fmt.Printf("%-20s %s  bonus=%d stigma=%d null=%d  %s\n",
			s.Name, s.Revision, s.Bonus, s.Stigma, s.Null, s.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func cmdDeleteProfile(ctx context.Context, cmd *cli.Command) error {
	name, err := profileName(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(name); err != nil {
		return err
	}
	app.Logger.Info("Deleted word profile", "name", name)
	return nil
}
