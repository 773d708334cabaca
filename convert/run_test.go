package convert

import (
	"context"
	"errors"
	"testing"

	cli "github.com/urfave/cli/v3"

	"hslc/common"
)

func TestSelectTarget(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    common.Space
		wantErr bool
	}{
		{"default", []string{"test"}, common.SpaceRgba, false},
		{"hsl", []string{"test", "--to", "hsl"}, common.SpaceHsl, false},
		{"upper case", []string{"test", "-t", "HSLA"}, common.SpaceHsla, false},
		{"unknown", []string{"test", "--to", "cmyk"}, common.SpaceRgba, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got common.Space
				err error
			)
			cmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{&cli.StringFlag{Name: "to", Aliases: []string{"t"}}},
				Action: func(_ context.Context, cmd *cli.Command) error {
					got, err = selectTarget(common.SpaceRgba, cmd)
					return nil
				},
			}
			if rerr := cmd.Run(context.Background(), tt.args); rerr != nil {
				t.Fatalf("Run() error = %v", rerr)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("selectTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, common.ErrInvalidSpace) {
				t.Errorf("error = %v, want ErrInvalidSpace", err)
			}
			if got != tt.want {
				t.Errorf("selectTarget() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRun_UnknownTarget(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	cmd := &cli.Command{
		Name:   "convert",
		Flags:  []cli.Flag{&cli.StringFlag{Name: "to"}},
		Action: Run,
	}
	if err := cmd.Run(ctx, []string{"convert", "--to", "lab", "#fff"}); !errors.Is(err, common.ErrInvalidSpace) {
		t.Errorf("Run() error = %v, want ErrInvalidSpace", err)
	}
}
