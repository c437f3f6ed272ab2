package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/kinemodel/config"
	"go.viam.com/kinemodel/linalg"
	"go.viam.com/kinemodel/logging"
	"go.viam.com/kinemodel/referenceframe"
	"go.viam.com/kinemodel/referenceframe/urdf"
	"go.viam.com/kinemodel/utils"
)

type runContext struct {
	c      *cli.Context
	cfg    *config.Config
	logger logging.Logger
}

// newRunContext reads the config named by --config, if any, and applies it to the process.
func newRunContext(c *cli.Context) (*runContext, error) {
	logger := logging.NewBlankLogger(c.App.Name)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	cfg := &config.Config{}
	if path := c.String(generalFlagConfig); path != "" {
		read, err := config.Read(path, logger)
		if err != nil {
			return nil, err
		}
		cfg = read
	} else if err := cfg.Validate("flags"); err != nil {
		return nil, err
	}
	if c.Bool(generalFlagDebug) {
		cfg.Debug = true
	}
	if err := cfg.Apply(logger); err != nil {
		return nil, err
	}
	return &runContext{c: c, cfg: cfg, logger: logger}, nil
}

func (rc *runContext) printf(format string, a ...interface{}) {
	fmt.Fprintf(rc.c.App.Writer, format, a...)
}

// loadModel picks the reader by file extension. Anything that is not URDF is read as JSON.
func loadModel(path, name string, logger logging.Logger) (*referenceframe.Robot, error) {
	var (
		robot *referenceframe.Robot
		err   error
	)
	if strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), urdf.Extension) {
		robot, err = urdf.ParseModelXMLFile(path, name, logger)
	} else {
		robot, err = referenceframe.ParseModelJSONFile(path, name, logger)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return robot, nil
}

// loadModels builds every file concurrently. Results keep the order of paths.
func (rc *runContext) loadModels(paths []string, name string) ([]*referenceframe.Robot, error) {
	robots := make([]*referenceframe.Robot, len(paths))
	funcs := make([]utils.SimpleFunc, 0, len(paths))
	for i, path := range paths {
		i, path := i, path
		funcs = append(funcs, func(ctx context.Context) error {
			robot, err := loadModel(path, name, rc.logger)
			if err != nil {
				return err
			}
			robots[i] = robot
			return nil
		})
	}
	elapsed, err := utils.RunInParallel(rc.c.Context, funcs)
	if err != nil {
		return nil, err
	}
	rc.logger.Debugw("loaded models", "count", len(paths), "elapsed", elapsed)
	return robots, nil
}

func (rc *runContext) loadSingle() (*referenceframe.Robot, error) {
	if rc.c.Args().Len() != 1 {
		return nil, errors.New("must provide exactly one model file")
	}
	robots, err := rc.loadModels(rc.c.Args().Slice(), "")
	if err != nil {
		return nil, err
	}
	return robots[0], nil
}

// InspectAction builds each model file and prints its joint table.
func InspectAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("must provide at least one model file")
	}
	name := c.String(generalFlagName)
	if name != "" && len(paths) > 1 {
		return errors.Errorf("--%s can only be used with a single model file", generalFlagName)
	}
	robots, err := rc.loadModels(paths, name)
	if err != nil {
		return err
	}
	ok := color.New(color.FgGreen)
	for i, robot := range robots {
		ok.Fprintf(c.App.Writer, "%s: %d links, %d joints, %d DoF\n",
			paths[i], len(robot.Links()), len(robot.Joints()), robot.DoF())
		rc.printf("%s\n", robot.String())
		if c.Bool(inspectFlagTree) {
			rc.printf("%s", robot.TreeString())
		}
	}
	return nil
}

// OrderAction prints the order joints must be evaluated in so that every mimic joint follows its
// target.
func OrderAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	robot, err := rc.loadSingle()
	if err != nil {
		return err
	}
	for i, joint := range robot.MimicOrder() {
		if mimic, ok := joint.Mimic(); ok {
			rc.printf("%d\t%s\t(mimics %s)\n", i+1, joint.Name(), mimic.Joint)
			continue
		}
		rc.printf("%d\t%s\n", i+1, joint.Name())
	}
	return nil
}

// DOTAction prints the link graph of a model in DOT format.
func DOTAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	robot, err := rc.loadSingle()
	if err != nil {
		return err
	}
	out, err := robot.MarshalDOT()
	if err != nil {
		return err
	}
	rc.printf("%s\n", out)
	return nil
}

// SchemaAction prints the JSON schema of a JSON model document.
func SchemaAction(c *cli.Context) error {
	schema := jsonschema.Reflect(&referenceframe.ModelConfig{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\n", out)
	return nil
}

// linearSystem is the file format read by SolveAction.
type linearSystem struct {
	A [][]float64 `json:"a"`
	B [][]float64 `json:"b"`
}

func denseFromRows(field string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Errorf("%q must be a non-empty matrix", field)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Errorf("%q row %d has %d entries, expected %d", field, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// SolveAction solves a X = b for the system in the given file.
func SolveAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	if c.Args().Len() != 1 {
		return errors.New("must provide exactly one system file")
	}
	//nolint:gosec
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "failed to read system file")
	}
	var system linearSystem
	if err := json.Unmarshal(data, &system); err != nil {
		return errors.Wrapf(err, "cannot parse %s", c.Args().First())
	}
	a, err := denseFromRows("a", system.A)
	if err != nil {
		return err
	}
	b, err := denseFromRows("b", system.B)
	if err != nil {
		return err
	}

	d := linalg.NewDispatcher(nil, nil, rc.logger)
	var x *mat.Dense
	if c.Bool(solveFlagLeastSquares) {
		x, err = d.SparseLeastSquares(linalg.NewCSRFromDense(a), b, nil)
	} else {
		x, err = d.Solve(a, b, rc.cfg.FastSolve)
	}
	if err != nil {
		return err
	}
	rc.printf("%v\n", mat.Formatted(x, mat.Squeeze()))
	return nil
}
