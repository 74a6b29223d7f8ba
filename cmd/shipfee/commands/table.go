package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shipfee/internal/service/shipping/domain"
	"shipfee/internal/service/shipping/infrastructure"
	"shipfee/internal/service/shipping/infrastructure/rule"
)

func tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the effective fee table and check it against the fee table rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			validator, err := rule.NewCELFeeTableValidator()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(cfg.Shipping.FeeTable)
			if err != nil {
				return errors.Wrap(err, "encode fee table")
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))

			if err := validator.Validate(cfg.Shipping.FeeTable); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "# ok")
			return nil
		},
	}
	cmd.AddCommand(tablePublishCmd())
	return cmd
}

// tablePublishCmd 校验一份价格表 YAML 并写入 MySQL，成为该市场的启用版本
func tablePublishCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "publish <fee-table.yaml>",
		Short: "Validate a fee table file and store it as the active table of its market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read fee table")
			}
			table, err := infrastructure.ParseFeeTable(data, cfg.Shipping.FeeTable)
			if err != nil {
				return err
			}

			validator, err := rule.NewCELFeeTableValidator()
			if err != nil {
				return err
			}
			if err := validator.Validate(table); err != nil {
				return err
			}

			if dsn == "" {
				dsn = cfg.Infra.MySQL.DSN
			}
			if dsn == "" {
				return errors.New("no mysql dsn: set --dsn or infra.mysql.dsn")
			}
			db, err := infrastructure.NewMySQLDB(dsn)
			if err != nil {
				return err
			}
			if err := infrastructure.NewGormFeeTableRepository(db).Save(context.Background(), table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s/%s\n", table.Market, table.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "mysql dsn (defaults to infra.mysql.dsn)")
	return cmd
}

func distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <lat1> <lng1> <lat2> <lng2>",
		Short: "Print the great-circle distance in km between two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [4]float64
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return errors.Wrapf(err, "argument %d", i+1)
				}
				v[i] = f
			}
			km := domain.DistanceKm(domain.Coordinate{Lat: v[0], Lng: v[1]}, domain.Coordinate{Lat: v[2], Lng: v[3]})
			fmt.Fprintf(cmd.OutOrStdout(), "%.3f\n", km)
			return nil
		},
	}
}
