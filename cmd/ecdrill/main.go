// ecdrill evaluates elliptic-curve group operations on small configured curves.
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/ecdrill/weierstrass"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "ecdrill",
		Usage: "short Weierstrass curve arithmetic over small prime fields",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to a YAML file of curve definitions",
			EnvVars: []string{"ECDRILL_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "curve",
			Usage: "name of the curve to operate on",
			Value: "drill17",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, warn, error)",
			Value: "info",
		},
	}

	app.Before = func(cctx *cli.Context) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
			return errors.Wrap(err, "parsing log level")
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "add",
			Usage:     "add two affine points",
			ArgsUsage: "<x1> <y1> <x2> <y2>",
			Action:    runAdd,
		},
		{
			Name:      "double",
			Usage:     "double an affine point",
			ArgsUsage: "<x> <y>",
			Action:    runDouble,
		},
		{
			Name:      "mul",
			Usage:     "multiply an affine point by a non-negative scalar",
			ArgsUsage: "<x> <y> <k>",
			Action:    runMul,
		},
		{
			Name:      "lift",
			Usage:     "find the point with a given x coordinate",
			ArgsUsage: "<x>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "odd",
					Usage: "select the root with odd y",
				},
			},
			Action: runLift,
		},
		{
			Name:      "hash-to-point",
			Usage:     "hash a message to a curve point",
			ArgsUsage: "<message>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "tag",
					Usage: "domain separation tag",
					Value: "ecdrill/hash-to-point",
				},
			},
			Action: runHashToPoint,
		},
		{
			Name:   "curves",
			Usage:  "list configured curves",
			Action: runCurves,
		},
	}

	return app
}

func loadCurve(cctx *cli.Context) (*weierstrass.Curve, error) {
	cfg, err := LoadConfig(cctx.String("config"))
	if err != nil {
		return nil, err
	}
	name := cctx.String("curve")
	c, err := cfg.Curve(name)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded curve", "name", name, "curve", c.String())
	return c, nil
}

// intArgs parses exactly n signed integer arguments.
func intArgs(cctx *cli.Context, n int) ([]int64, error) {
	if cctx.NArg() != n {
		return nil, errors.Errorf("expected %d arguments, got %d", n, cctx.NArg())
	}
	out := make([]int64, n)
	for i := range out {
		v, err := strconv.ParseInt(cctx.Args().Get(i), 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		out[i] = v
	}
	return out, nil
}

// point builds an affine point from the arguments and warns if it is off the
// curve; the group formulas are still evaluated.
func point(c *weierstrass.Curve, x, y int64) weierstrass.AffinePoint {
	p := c.Point(x, y)
	if !c.IsOnCurve(p) {
		slog.Warn("point is not on the curve", "point", p.String(), "curve", c.String())
	}
	return p
}

func printResult(cctx *cli.Context, c *weierstrass.Curve, p weierstrass.AffinePoint) {
	fmt.Fprintf(cctx.App.Writer, "%s\t%s\n", p, hex.EncodeToString(c.Compress(p)))
}

func runAdd(cctx *cli.Context) error {
	args, err := intArgs(cctx, 4)
	if err != nil {
		return err
	}
	c, err := loadCurve(cctx)
	if err != nil {
		return err
	}

	p := c.ToProjective(point(c, args[0], args[1]))
	q := c.ToProjective(point(c, args[2], args[3]))
	sum := c.Add(p, q)
	slog.Debug("projective sum", "triple", sum.String())
	printResult(cctx, c, sum.ToAffine())
	return nil
}

func runDouble(cctx *cli.Context) error {
	args, err := intArgs(cctx, 2)
	if err != nil {
		return err
	}
	c, err := loadCurve(cctx)
	if err != nil {
		return err
	}

	d := c.Double(c.ToProjective(point(c, args[0], args[1])))
	slog.Debug("projective double", "triple", d.String())
	printResult(cctx, c, d.ToAffine())
	return nil
}

func runMul(cctx *cli.Context) error {
	if cctx.NArg() != 3 {
		return errors.Errorf("expected 3 arguments, got %d", cctx.NArg())
	}
	x, err := strconv.ParseInt(cctx.Args().Get(0), 0, 64)
	if err != nil {
		return errors.Wrap(err, "argument 1")
	}
	y, err := strconv.ParseInt(cctx.Args().Get(1), 0, 64)
	if err != nil {
		return errors.Wrap(err, "argument 2")
	}
	// The scalar is unsigned and may use the full 64 bits.
	k, err := strconv.ParseUint(cctx.Args().Get(2), 0, 64)
	if err != nil {
		return errors.Wrap(err, "scalar")
	}
	c, err := loadCurve(cctx)
	if err != nil {
		return err
	}

	r := c.ScalarMul(c.ToProjective(point(c, x, y)), k)
	slog.Debug("projective product", "triple", r.String(), "k", k)
	printResult(cctx, c, r.ToAffine())
	return nil
}

func runLift(cctx *cli.Context) error {
	args, err := intArgs(cctx, 1)
	if err != nil {
		return err
	}
	c, err := loadCurve(cctx)
	if err != nil {
		return err
	}

	p, ok := c.LiftX(c.Element(args[0]), cctx.Bool("odd"))
	if !ok {
		return errors.Errorf("no point with x = %d on %s", args[0], c)
	}
	printResult(cctx, c, p)
	return nil
}

func runHashToPoint(cctx *cli.Context) error {
	if cctx.NArg() == 0 {
		return errors.New("expected a message")
	}
	c, err := loadCurve(cctx)
	if err != nil {
		return err
	}

	msg := strings.Join(cctx.Args().Slice(), " ")
	p, err := c.HashToPoint([]byte(cctx.String("tag")), []byte(msg))
	if err != nil {
		return errors.Wrapf(err, "hashing %q", msg)
	}
	printResult(cctx, c, p)
	return nil
}

func runCurves(cctx *cli.Context) error {
	cfg, err := LoadConfig(cctx.String("config"))
	if err != nil {
		return err
	}
	for _, cc := range cfg.Curves {
		c, err := cfg.Curve(cc.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cctx.App.Writer, "%s\t%s\n", cc.Name, c)
	}
	return nil
}
