package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"leftover-chef/internal/client"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const name = "chefctl"

// overridden during build with ldflags
var version = "dev"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"o"},
		Value:   "yaml",
		Usage:   "Output format (json, yaml)",
	}
}

// NewApp 建立 chefctl 根命令
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Find recipes for leftover ingredients",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "http://localhost:8080",
				Usage:   "leftover-chef API base URL",
				Sources: cli.EnvVars("CHEF_ADDR"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
				Usage: "Request timeout",
			},
		},
		Commands: []*cli.Command{
			matchCmd(),
			alternativeCmd(),
			alternativesCmd(),
			byMealCmd(),
			savedCmd(),
			resetCmd(),
			categorizeCmd(),
		},
	}
}

// Run 執行命令列
func Run(ctx context.Context, args []string) error {
	return NewApp().Run(ctx, args)
}

func ingredientsFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "ingredient",
		Aliases: []string{"i"},
		Usage:   "Leftover ingredient; repeat or separate with commas (positional arguments are also accepted)",
	}
}

func mealFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "meal",
		Aliases: []string{"m"},
		Usage:   "Meal type (breakfast, lunch, dinner, any)",
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Record the served recipe in this user's meal log",
	}
}

func matchCmd() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Serve the best recipe that has not been served yet",
		Flags: []cli.Flag{ingredientsFlag(), mealFlag(), userFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ingredients, err := ingredientsFrom(cmd)
			if err != nil {
				return err
			}
			resp, err := newClient(cmd).Match(ctx, ingredients, cmd.String("meal"), cmd.String("user"))
			if err != nil {
				return err
			}
			return write(cmd, resp)
		},
	}
}

func alternativeCmd() *cli.Command {
	return &cli.Command{
		Name:  "alternative",
		Usage: "Serve a recipe different from the last one",
		Flags: []cli.Flag{ingredientsFlag(), userFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ingredients, err := ingredientsFrom(cmd)
			if err != nil {
				return err
			}
			resp, err := newClient(cmd).Alternative(ctx, ingredients, cmd.String("user"))
			if err != nil {
				return err
			}
			return write(cmd, resp)
		},
	}
}

func alternativesCmd() *cli.Command {
	return &cli.Command{
		Name:  "alternatives",
		Usage: "List the top ranked recipes without changing the rotation",
		Flags: []cli.Flag{
			ingredientsFlag(),
			mealFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   5,
				Usage:   "Maximum number of recipes",
			},
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ingredients, err := ingredientsFrom(cmd)
			if err != nil {
				return err
			}
			recipes, err := newClient(cmd).Alternatives(ctx, ingredients, cmd.String("meal"), cmd.Int("limit"))
			if err != nil {
				return err
			}
			return write(cmd, recipes)
		},
	}
}

func byMealCmd() *cli.Command {
	return &cli.Command{
		Name:      "by-meal",
		Usage:     "List recipes available for a meal type",
		ArgsUsage: "<breakfast|lunch|dinner|any>",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one meal type, got %d", cmd.NArg())
			}
			recipes, err := newClient(cmd).ByMealType(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			return write(cmd, recipes)
		},
	}
}

func savedCmd() *cli.Command {
	return &cli.Command{
		Name:  "saved",
		Usage: "Show pounds of food saved, in total or for one user",
		Flags: []cli.Flag{userFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c := newClient(cmd)
			out := client.FoodSaved{Unit: "lb"}
			if user := cmd.String("user"); user != "" {
				saved, err := c.UserFoodSaved(ctx, user)
				if err != nil {
					return err
				}
				out.FoodSaved = saved
			} else {
				saved, err := c.FoodSaved(ctx)
				if err != nil {
					return err
				}
				out.Total = saved
			}
			return write(cmd, out)
		},
	}
}

func resetCmd() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Clear the rotation so every recipe can be served again",
		Flags: []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stats, err := newClient(cmd).Reset(ctx)
			if err != nil {
				return err
			}
			return write(cmd, stats)
		},
	}
}

func categorizeCmd() *cli.Command {
	return &cli.Command{
		Name:  "categorize",
		Usage: "Group ingredients into produce, dairy, spices and other",
		Flags: []cli.Flag{ingredientsFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ingredients, err := ingredientsFrom(cmd)
			if err != nil {
				return err
			}
			result, err := newClient(cmd).Categorize(ctx, ingredients)
			if err != nil {
				return err
			}
			return write(cmd, result.Groups)
		},
	}
}

func newClient(cmd *cli.Command) *client.Client {
	return client.New(cmd.String("addr"), cmd.Duration("timeout"))
}

// ingredientsFrom 合併 --ingredient 與位置參數
func ingredientsFrom(cmd *cli.Command) ([]string, error) {
	ingredients := append([]string{}, cmd.StringSlice("ingredient")...)
	ingredients = append(ingredients, cmd.Args().Slice()...)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("at least one ingredient is required")
	}
	return ingredients, nil
}

func write(cmd *cli.Command, v interface{}) error {
	var w io.Writer = os.Stdout
	if root := cmd.Root(); root != nil && root.Writer != nil {
		w = root.Writer
	}

	switch cmd.String("format") {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %q", cmd.String("format"))
	}
}
