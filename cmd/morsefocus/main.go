// Package main provides the CLI entrypoint for morsefocus.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/js216/morsefocus/internal/audio"
	"github.com/js216/morsefocus/internal/config"
	"github.com/js216/morsefocus/internal/diff"
	"github.com/js216/morsefocus/internal/gen"
	"github.com/js216/morsefocus/internal/model"
	"github.com/js216/morsefocus/internal/morse"
	"github.com/js216/morsefocus/internal/record"
	"github.com/js216/morsefocus/internal/stats"
	"github.com/js216/morsefocus/internal/synth"
)

const (
	defaultLength  = 250
	defaultScale   = 1.0
	defaultSpeed   = 25.0
	defaultSpeed2  = 25.0
	defaultMinWord = 2
	defaultMaxWord = 7
	defaultFreq    = 700.0
	defaultAmp     = 0.3
	defaultDelay   = 1.0

	// How many of the worst characters get accented in the session report.
	highlightWorst = 5
	// Sessions averaged for the stats error-rate trend.
	defaultCurveWindow = 5
)

// charsetLabel tags records written by this program. Historically a label
// only, never a generation constraint.
const charsetLabel = "~"

var (
	practiceFile    string
	practiceLength  int
	practiceScale   float64
	practiceSpeed   float64
	practiceSpeed2  float64
	practiceMinWord int
	practiceMaxWord int
	audioFreq       float64
	audioAmp        float64
	audioDelay      float64

	playSpeed  float64
	playSpeed2 float64
	playFreq   float64
	playAmp    float64
	playDelay  float64

	genLength  int
	genMinWord int
	genMaxWord int
	genWeights string
	genCharset string
	genScale   float64
	genSeed    uint32
	genOutput  string

	statsFile   string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	long := "morsefocus generates random practice text weighted toward the\n" +
		"characters you miss, plays it as Morse code audio, and scores your\n" +
		"transcription to update the weights for the next session."

	rootCmd := &cobra.Command{
		Use:           "morsefocus",
		Short:         "Morse code practice trainer",
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceFile, "file", "", "weights record file (default: XDG data dir)")
	rootCmd.Flags().IntVar(&practiceLength, "length", defaultLength, "number of characters to generate")
	rootCmd.Flags().Float64Var(&practiceScale, "scale", defaultScale, "nonlinear weight rescale exponent (0.01-1]")
	rootCmd.Flags().Float64Var(&practiceSpeed, "speed", defaultSpeed, "character speed in WPM")
	rootCmd.Flags().Float64Var(&practiceSpeed2, "farnsworth", defaultSpeed2, "Farnsworth spacing speed in WPM")
	rootCmd.Flags().IntVar(&practiceMinWord, "min-word", defaultMinWord, "minimum word length")
	rootCmd.Flags().IntVar(&practiceMaxWord, "max-word", defaultMaxWord, "maximum word length")
	rootCmd.Flags().Float64Var(&audioFreq, "freq", defaultFreq, "tone frequency in Hz")
	rootCmd.Flags().Float64Var(&audioAmp, "amp", defaultAmp, "tone amplitude (0-1)")
	rootCmd.Flags().Float64Var(&audioDelay, "delay", defaultDelay, "initial silence in seconds")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &practiceFile, fileCfg.Practice.File)
	applyIntConfig(cmd, "length", &practiceLength, fileCfg.Practice.Length)
	applyFloatConfig(cmd, "scale", &practiceScale, fileCfg.Practice.Scale)
	applyFloatConfig(cmd, "speed", &practiceSpeed, fileCfg.Practice.Speed)
	applyFloatConfig(cmd, "farnsworth", &practiceSpeed2, fileCfg.Practice.Speed2)
	applyIntConfig(cmd, "min-word", &practiceMinWord, fileCfg.Practice.MinWord)
	applyIntConfig(cmd, "max-word", &practiceMaxWord, fileCfg.Practice.MaxWord)
	applyFloatConfig(cmd, "freq", &audioFreq, fileCfg.Audio.Freq)
	applyFloatConfig(cmd, "amp", &audioAmp, fileCfg.Audio.Amp)
	applyFloatConfig(cmd, "delay", &audioDelay, fileCfg.Audio.Delay)

	path := practiceFile
	if path == "" {
		path = config.DefaultRecordPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	rec := model.Record{
		Scale:   practiceScale,
		Speed1:  practiceSpeed,
		Speed2:  practiceSpeed2,
		Len:     float64(practiceLength),
		Charset: charsetLabel,
	}
	rec.Weights.Fill(1)

	hasHistory, err := record.HasContent(path)
	if err != nil {
		return fmt.Errorf("failed to check record file: %w", err)
	}
	if hasHistory {
		last, err := record.LoadLast(path)
		if err != nil {
			return err
		}
		rec.Weights = last.Weights
		if err := rec.Weights.Scale(practiceScale); err != nil {
			return err
		}
		// Carry the spacing speed forward, nudged toward the target
		// error rate, unless the user pinned it down explicitly.
		if !cmd.Flags().Changed("farnsworth") && fileCfg.Practice.Speed2 == nil {
			rec.Speed2 = stats.AdaptSpeed(last.Speed2, last.Dist, last.Len)
		}
	}

	if rec.Speed1 < rec.Speed2 {
		return fmt.Errorf("character speed %.1f must not be below Farnsworth speed %.1f",
			rec.Speed1, rec.Speed2)
	}

	text, err := gen.New().Chars(practiceLength+2, practiceMinWord, practiceMaxWord,
		&rec.Weights, "")
	if err != nil {
		return err
	}

	secs, err := morse.Duration(text, rec.Speed1, rec.Speed2)
	if err != nil {
		return err
	}
	fmt.Printf("Sending %d characters at %.1f/%.1f wpm (~%.1f min)\n",
		practiceLength, rec.Speed1, rec.Speed2, secs/60.0)
	fmt.Print("Received text? ")

	if _, err := audio.Play(text, synth.Config{
		CharSpeed:       rec.Speed1,
		FarnsworthSpeed: rec.Speed2,
		Freq:            audioFreq,
		Amp:             audioAmp,
		Delay:           audioDelay,
	}); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	received, err := readLine(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read transcription: %w", err)
	}
	received = strings.TrimSpace(strings.ToLower(received))
	if received == "" {
		return fmt.Errorf("no transcription received")
	}

	var session model.Weights
	dist, err := diff.Distance(&session, text, received)
	if err != nil {
		return err
	}

	fmt.Printf("Expected text: %s\n", text)
	for _, line := range stats.RenderCharErrors(stats.CharErrors(&session), highlightWorst) {
		fmt.Println(line)
	}
	fmt.Printf("%d errors out of %d = %.1f%%\n", dist, practiceLength,
		stats.ErrorPercent(float64(dist), float64(practiceLength)))

	save := true
	if term.IsTerminal(int(os.Stdin.Fd())) {
		save, err = askYesNo("Record this to the weights file?")
		if err != nil {
			return err
		}
	}
	if !save {
		return nil
	}

	rec.Time = time.Now()
	rec.Dist = float64(dist)
	rec.Weights.Add(&session)
	if err := record.Append(path, rec); err != nil {
		return err
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play [text]",
		Short: "Play text as Morse code audio",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlayCmd,
	}
	playCmd.Flags().Float64Var(&playSpeed, "speed", defaultSpeed, "character speed in WPM")
	playCmd.Flags().Float64Var(&playSpeed2, "farnsworth", defaultSpeed2, "Farnsworth spacing speed in WPM")
	playCmd.Flags().Float64Var(&playFreq, "freq", defaultFreq, "tone frequency in Hz")
	playCmd.Flags().Float64Var(&playAmp, "amp", defaultAmp, "tone amplitude (0-1)")
	playCmd.Flags().Float64Var(&playDelay, "delay", defaultDelay, "initial silence in seconds")
	return playCmd
}

func runPlayCmd(_ *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := readAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = data
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("nothing to play")
	}

	elapsed, err := audio.Play(text, synth.Config{
		CharSpeed:       playSpeed,
		FarnsworthSpeed: playSpeed2,
		Freq:            playFreq,
		Amp:             playAmp,
		Delay:           playDelay,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Played %.1f s of audio\n", float64(elapsed)/1000.0)
	return nil
}

func newGenCmd() *cobra.Command {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random practice text",
		Args:  cobra.NoArgs,
		RunE:  runGenCmd,
	}
	genCmd.Flags().IntVar(&genLength, "length", defaultLength, "number of characters to generate")
	genCmd.Flags().IntVar(&genMinWord, "min-word", defaultMinWord, "minimum word length")
	genCmd.Flags().IntVar(&genMaxWord, "max-word", defaultMaxWord, "maximum word length")
	genCmd.Flags().StringVar(&genWeights, "weights", "", "load weights from last record of this file")
	genCmd.Flags().StringVar(&genCharset, "charset", "", "custom character set (default: Koch order)")
	genCmd.Flags().Float64Var(&genScale, "scale", defaultScale, "nonlinear weight rescale exponent (0.01-1]")
	genCmd.Flags().Uint32Var(&genSeed, "seed", 0, "PRNG seed (0 seeds from the clock)")
	genCmd.Flags().StringVar(&genOutput, "output", "", "write output to a file instead of stdout")
	return genCmd
}

func runGenCmd(_ *cobra.Command, _ []string) error {
	var weights *model.Weights
	if genWeights != "" {
		rec, err := record.LoadLast(genWeights)
		if err != nil {
			return err
		}
		weights = &rec.Weights
		if err := weights.Scale(genScale); err != nil {
			return err
		}
	}

	g := gen.New()
	if genSeed != 0 {
		g = gen.NewSeeded(genSeed)
	}
	text, err := g.Chars(genLength+2, genMinWord, genMaxWord, weights, genCharset)
	if err != nil {
		return err
	}

	if genOutput != "" {
		return os.WriteFile(genOutput, []byte(text+"\n"), 0o644)
	}
	fmt.Println(text)
	return nil
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <expected> <received>",
		Short: "Score a transcription against the expected text",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiffCmd,
	}
}

func runDiffCmd(_ *cobra.Command, args []string) error {
	expected := strings.TrimSpace(strings.ToLower(args[0]))
	received := strings.TrimSpace(strings.ToLower(args[1]))

	var session model.Weights
	dist, err := diff.Distance(&session, expected, received)
	if err != nil {
		return err
	}
	for _, line := range stats.RenderCharErrors(stats.CharErrors(&session), highlightWorst) {
		fmt.Println(line)
	}
	fmt.Printf("distance: %d\n", dist)
	return nil
}

func newStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	statsCmd.Flags().StringVar(&statsFile, "file", "", "weights record file (default: XDG data dir)")
	statsCmd.Flags().IntVar(&statsLast, "last", 0, "only show the last N sessions (0 = all)")
	statsCmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving-average window for the trend")
	return statsCmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	path := statsFile
	if path == "" {
		path = config.DefaultRecordPath()
	}
	recs, err := record.LoadAll(path)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no practice sessions recorded in %q", path)
	}
	if statsLast > 0 && len(recs) > statsLast {
		recs = recs[len(recs)-statsLast:]
	}

	for _, line := range stats.BuildHistory(recs, statsWindow).Render(0) {
		fmt.Println(line)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return `# morsefocus configuration
#
# Values here override the built-in defaults; command-line flags override
# both.

[practice]
# length = 250
# scale = 1.0
# speed = 25.0
# farnsworth = 25.0
# min-word = 2
# max-word = 7
# file = ""

[audio]
# freq = 700.0
# amp = 0.3
# delay = 1.0
`
}

func readLine(f *os.File) (string, error) {
	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func readAll(f *os.File) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func askYesNo(prompt string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s (y/n): ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("please answer 'y' or 'n'")
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
