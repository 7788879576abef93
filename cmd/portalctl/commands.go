// commands.go
//
// Liming and fertilization consultancy portal with customer self-service and calculators
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of limeportal.
// limeportal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// limeportal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with limeportal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agrolime/limeportal/data"
	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/database"
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const cliActor = "portalctl"

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Lime portal maintenance and calculators",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			l, err := logging.New(level, "console")
			if err != nil {
				return err
			}
			logging.Set(l)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newRoleCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newLimingCmd())
	return root
}

// withDB loads the environment configuration and opens the database for one command
func withDB(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter product catalog into empty tables",
		Long: `Load the starter product catalog.

Tables that already contain rows are skipped, so the command is safe to run
on every deploy. Without --file the catalog bundled with the binary is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := data.SeedCatalog
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				raw = b
			}
			return withDB(func(db *gorm.DB) error {
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
				res, err := database.SeedCatalog(db, raw)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d liming products, %d fertilization products, %d images\n",
					res.LimingProducts, res.FertilizationProducts, res.PortalImages)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the bundled one")
	return cmd
}

func newRoleCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "role <profile-id>",
		Short: "Grant or revoke the admin role",
		Long: `Set the role of an existing profile.

Profiles are created on a user's first signed-in request, so the user has to
sign in once before they can be promoted. This is how the first admin is made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				profile, err := services.SetRole(db, cliActor, args[0], role)
				if errors.Is(err, services.ErrNotFound) {
					return fmt.Errorf("no profile %q: the user has to sign in to the portal first", args[0])
				}
				if err != nil {
					return err
				}
				services.RecordAudit(db, cliActor, services.AuditRole, "profiles", profile.ID, map[string]string{"role": profile.Role})
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", profile.ID, profile.Email, profile.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "Role to set (user or admin)")
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert between nutrient forms, e.g. convert 10 CaO CaCO3",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			from, err := agronomy.ParseCompound(args[1])
			if err != nil {
				return err
			}
			to, err := agronomy.ParseCompound(args[2])
			if err != nil {
				return err
			}
			result, err := agronomy.Convert(value, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g %s = %g %s\n", value, from, agronomy.Round(result, 2), to)
			return nil
		},
	}
}

func newLimingCmd() *cobra.Command {
	var (
		in   agronomy.LimingInput
		soil string
	)
	cmd := &cobra.Command{
		Use:   "liming",
		Short: "Compute the liming dose for a parcel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Category = agronomy.SoilCategory(soil)
			plan, err := agronomy.PlanLiming(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !plan.LimingNeeded {
				fmt.Fprintf(out, "no liming needed, pH %.1f is at or above %.1f for %s soil\n", in.PH, plan.TargetPH, soil)
				return nil
			}
			fmt.Fprintf(out, "CaO need:      %.2f t/ha (%.2f t/ha CaCO3)\n", plan.CaONeedTHa, plan.CaCO3NeedTHa)
			fmt.Fprintf(out, "product dose:  %.2f t/ha\n", plan.ProductDoseTHa)
			fmt.Fprintf(out, "total product: %.2f t\n", plan.TotalProductT)
			fmt.Fprintf(out, "total cost:    %.2f\n", plan.TotalCost)
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.PH, "ph", 0, "Soil pH measured in KCl")
	cmd.Flags().StringVar(&soil, "soil", string(agronomy.Medium), "Soil category (very_light, light, medium, heavy)")
	cmd.Flags().Float64Var(&in.AreaHa, "area", 1, "Parcel area in hectares")
	cmd.Flags().Float64Var(&in.CaOPct, "cao", 50, "Product CaO content in percent")
	cmd.Flags().Float64Var(&in.MgOPct, "mgo", 0, "Product MgO content in percent")
	cmd.Flags().Float64Var(&in.PricePerTon, "price", 0, "Product price per tonne")
	_ = cmd.MarkFlagRequired("ph")
	return cmd
}

// parseNumber accepts a decimal comma, as typed from Polish lab reports
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", agronomy.ErrInvalidInput, s)
	}
	return v, nil
}
