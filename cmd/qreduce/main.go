package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"

	"github.com/qreduce-team/qreduce-engine/common"
	"github.com/qreduce-team/qreduce-engine/core"
	"github.com/qreduce-team/qreduce-engine/qasm"
	"github.com/qreduce-team/qreduce-engine/reduce"
	"github.com/qreduce-team/qreduce-engine/sim"

	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rotate "github.com/lestrrat-go/file-rotatelogs"
)

var versionByBuildFlag string
var parser *flags.Parser
var app *App

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Printf("Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	} else {
		fmt.Println("Found \".env\" file. Environment variables are preferred, " +
			"but non-conflicting variables are those in the \".env\" file.")
	}
	app = &App{}
	setParser(app)
}

type App struct {
	ReducerParameters *ReducerParameters
	Conf              *core.Conf
}

type ReducerParameters struct {
	DisableMerge        bool `long:"disable-merge" description:"disable rotation merging" env:"QREDUCE_DISABLE_MERGE"`
	DisableCancel       bool `long:"disable-cancel" description:"disable inverse-pair cancellation" env:"QREDUCE_DISABLE_CANCEL"`
	DisableCommute      bool `long:"disable-commute" description:"disable commute-and-merge" env:"QREDUCE_DISABLE_COMMUTE"`
	DisableCanonicalize bool `long:"disable-canonicalize" description:"disable single-qubit canonicalization" env:"QREDUCE_DISABLE_CANONICALIZE"`
	MaxIterations       int  `long:"max-iterations" description:"worklist iteration cap" default:"100000" env:"QREDUCE_MAX_ITERATIONS"`
}

func setParser(app *App) {
	parser = flags.NewParser(app, flags.Default)
	parser.ShortDescription = "qreduce"
	parser.LongDescription = "exact quantum circuit simplification engine"
	parser.AddCommand("reduce", "reduce a circuit",
		"rewrite a circuit to a smaller equivalent one, global phase included", newReduceCmd())
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Printf("failed to parse flags, because %s\n", err)
		}
		os.Exit(code)
	}
}

func (a *App) provideDIContainer() (c *dig.Container, err error) {
	c = dig.New()
	err = c.Provide(func() (*reduce.Reducer, error) {
		return reduce.NewReducer(a.reducerSetting()), nil
	})
	if err != nil {
		return &dig.Container{}, err
	}
	return
}

func (a *App) reducerSetting() reduce.ReducerSetting {
	s := reduce.NewReducerSetting()
	p := a.ReducerParameters
	if p == nil {
		return s
	}
	s.EnableMerge = !p.DisableMerge
	s.EnableCancel = !p.DisableCancel
	s.EnableCommute = !p.DisableCommute
	s.EnableCanonicalize = !p.DisableCanonicalize
	if p.MaxIterations > 0 {
		s.MaxIterations = p.MaxIterations
	}
	return s
}

func zapLogger(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder //Not use UnixTime
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}
	var level zap.AtomicLevel
	switch conf.LogLevel {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cores := []zapcore.Core{}
	if conf.EnableFileLog {
		rotater, err := makeRotator(conf.LogDir, conf.LogRotationMaxDays)
		if err != nil {
			return &zap.Logger{}, err
		}
		syncer := zapcore.AddSync(rotater)
		rotateCore := zapcore.NewCore(
			encoder,
			syncer,
			level)
		cores = append(cores, rotateCore)
	}
	if !conf.DisableStdoutLog {
		debugCore := zapcore.NewCore(
			encoder,
			zapcore.Lock(os.Stderr),
			level)
		cores = append(cores, debugCore)
	}
	zapCore := zapcore.NewTee(cores...)
	return zap.New(zapCore, zap.AddCaller()), nil
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	if err := common.IsDirWritable(dirPath); err != nil {
		return &rotate.RotateLogs{}, err
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, "qreduce-%Y-%m-%d.log"),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return &rotate.RotateLogs{}, err
	}
	return rotator, nil
}

func main() {
	parse()
}

type reduceCmd struct {
	Output string `short:"o" long:"output" description:"output file path, stdout if empty"`
	Format string `long:"format" description:"input format" default:"auto" choice:"auto" choice:"json" choice:"qasm"`
	Verify bool   `long:"verify" description:"check unitary equivalence of input and output by dense simulation"`
}

func newReduceCmd() *reduceCmd {
	return &reduceCmd{}
}

func (r *reduceCmd) Execute(args []string) error {
	logger := setZap(app.Conf)
	defer logger.Sync()

	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input file, got %d arguments", len(args))
	}
	inputPath := args[0]

	core.ResetSetting()
	core.RegisterSetting(reduce.REDUCER_SETTING_KEY, app.reducerSetting())
	if _, err := os.Stat(app.Conf.SettingPath); err == nil {
		if err := core.ParseSettingFromPath(app.Conf.SettingPath); err != nil {
			zap.L().Error(fmt.Sprintf("failed to parse settings/reason:%s", err))
			return err
		}
		zap.L().Debug(fmt.Sprintf("settings:%v", core.GetGlobalSetting().ComponentSetting))
	} else {
		zap.L().Debug(fmt.Sprintf("no setting file at %s, using defaults", app.Conf.SettingPath))
	}

	container, err := app.provideDIContainer()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up DI-Container. Reason:%s", err.Error()))
		return err
	}
	return container.Invoke(func(reducer *reduce.Reducer) error {
		return r.run(reducer, inputPath)
	})
}

func (r *reduceCmd) run(reducer *reduce.Reducer, inputPath string) error {
	src, err := common.ReadFile(inputPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read %s/reason:%s", inputPath, err))
		return err
	}

	format := r.Format
	if format == "auto" {
		if strings.HasSuffix(inputPath, ".qasm") {
			format = "qasm"
		} else {
			format = "json"
		}
	}
	var desc *core.Description
	if format == "qasm" {
		desc, err = qasm.Parse(src)
	} else {
		desc, err = core.ParseDescription(src)
	}
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse %s as %s/reason:%s", inputPath, format, err))
		return err
	}

	original := desc.Clone()
	circuit, err := desc.BuildCircuit()
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to build circuit/reason:%s", err))
		return err
	}

	if err := reducer.Setup(app.Conf); err != nil {
		return err
	}
	before := circuit.Count()
	changed, err := reducer.Reduce(circuit)
	if err != nil {
		zap.L().Error(fmt.Sprintf("reduction failed/reason:%s", err))
		return err
	}
	reduced := core.NewDescription(circuit)
	zap.L().Info(fmt.Sprintf("reduced %d operations to %d (changed:%t, phase:%s)",
		before, circuit.Count(), changed, circuit.Phase))
	zap.L().Debug(fmt.Sprintf("reduced description:%s", common.PlainJsonString(reduced.String())))

	if r.Verify {
		if err := verify(original, reduced); err != nil {
			return err
		}
	}
	return r.write(reduced, format)
}

func verify(original, reduced *core.Description) error {
	left, err := original.BuildCircuit()
	if err != nil {
		return err
	}
	right, err := reduced.BuildCircuit()
	if err != nil {
		return err
	}
	leftU, err := sim.Unitary(left)
	if err != nil {
		zap.L().Warn(fmt.Sprintf("skipping verification/reason:%s", err))
		return nil
	}
	rightU, err := sim.Unitary(right)
	if err != nil {
		zap.L().Warn(fmt.Sprintf("skipping verification/reason:%s", err))
		return nil
	}
	if !sim.Equal(leftU, rightU, core.AngleEpsilon) {
		return fmt.Errorf("reduced circuit is not equivalent to its input")
	}
	zap.L().Info("verified unitary equivalence")
	return nil
}

func (r *reduceCmd) write(d *core.Description, format string) error {
	var out string
	if format == "qasm" {
		out = qasm.Emit(d)
	} else {
		out = d.PrettyString()
	}
	if r.Output == "" {
		fmt.Println(out)
		return nil
	}
	return os.WriteFile(r.Output, []byte(out), 0644)
}

// TODO : move to log package
func setZap(conf *core.Conf) *zap.Logger {
	logger, err := zapLogger(conf)
	if err != nil {
		fmt.Printf("Failed to setup logger. Reason:%s\n", err)
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	zap.L().Debug("Starting logger")
	zap.L().Debug(fmt.Sprintf("DevMode is %t", conf.DevMode))
	core.SetVersion(conf, versionByBuildFlag)
	return logger
}
