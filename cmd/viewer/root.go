package main

import (
	"HealGolang/internal/api/emotion"
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/internal/config"
	"HealGolang/internal/entity"
	"HealGolang/pkg/log"
	"HealGolang/pkg/opencv"
	"HealGolang/pkg/redis"
	"HealGolang/pkg/utils"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Version is the viewer version.
const Version = "0.1.0"

type viewerOptions struct {
	Profile    string
	Timeout    time.Duration
	Source     string
	Device     string
	Classifier string
	Grayscale  bool
	Headless   bool
}

func newRootCmd() *cobra.Command {
	var opts viewerOptions

	cmd := &cobra.Command{
		Use:     "heal-viewer",
		Short:   "Watch the camera until one emotion is detected",
		Version: Version,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := entity.DetectionProfile(opts.Profile).Params(); !ok {
				return fmt.Errorf("%w: %q", emotion.ErrInvalidProfile, opts.Profile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Warn(log.Fields{"error": err.Error()}, "No .env file loaded, using process environment")
			}

			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			opts.apply(&env)

			outcome, err := runViewer(cmd.Context(), env, opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), describe(outcome))
			return nil
		},
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := cmd.Flags()
	flags.StringVarP(&opts.Profile, "profile", "p", string(entity.ProfileStrict), "Face detection profile (lax or strict)")
	flags.DurationVarP(&opts.Timeout, "timeout", "t", 0, "Give up after this long (0 waits until a face is found or q is pressed)")
	flags.StringVarP(&opts.Source, "source", "s", "", "Capture backend override (opencv or ffmpeg)")
	flags.StringVarP(&opts.Device, "device", "d", "", "Camera index, device path or ffmpeg input override")
	flags.StringVarP(&opts.Classifier, "classifier", "c", "", "Emotion classifier override (worker, websocket or gemini)")
	flags.BoolVar(&opts.Grayscale, "grayscale", true, "Classify a greyscale crop of the face")
	flags.BoolVar(&opts.Headless, "headless", false, "Run without a preview window")

	return cmd
}

// apply layers the command line over the environment.
func (o viewerOptions) apply(env *config.Env) {
	if o.Source != "" {
		env.FrameSource = o.Source
	}
	if o.Classifier != "" {
		env.EmotionClassifier = o.Classifier
	}
	if o.Device != "" {
		if env.FrameSource == "ffmpeg" {
			env.FFmpegInput = o.Device
		} else {
			env.CameraDevice = o.Device
		}
	}
	env.LocatorProfile = o.Profile
}

func runViewer(ctx context.Context, env config.Env, opts viewerOptions) (entity.SessionOutcome, error) {
	logger := log.NewLogger()
	u := utils.New()

	source := config.NewFrameSource(env, u, logger)
	if env.RedisAddress != "" {
		redisServer := redis.New(redis.Config{
			Address:  env.RedisAddress,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		defer redisServer.Close()
		source = emotionService.NewLeasedSource(source, redisServer, "heal:device:"+env.DeviceKey(), env.DeviceLeaseTTL, logger)
	}

	locator, err := opencv.NewCascadeLocator(env.CascadePath)
	if err != nil {
		return entity.SessionOutcome{}, err
	}
	defer locator.Close()

	classifier, closeClassifier, err := config.NewEmotionClassifier(env, u, logger)
	if err != nil {
		return entity.SessionOutcome{}, err
	}
	defer closeClassifier()

	service := emotionService.NewEmotionService(logger, source, locator, classifier, emotion.DefaultSuggestionCatalog(), u, env.DefaultParams())

	if opts.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, opts.Timeout)
		defer cancelTimeout()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning for a face"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	var window *opencv.Window
	var screen previewer
	if !opts.Headless {
		window = opencv.NewWindow("Heal Emotion Detection")
		defer window.Close()
		screen = window
	}

	// The observer runs on this goroutine, so the window is only touched here.
	observer := newObserver(screen, opencv.NewAnnotator(), bar, cancel, logger)

	outcome, err := service.RunSession(ctx, emotionService.SessionRequest{
		Params:        env.DefaultParams(),
		GrayscaleCrop: opts.Grayscale,
		Observer:      observer,
	})
	if err != nil {
		return entity.SessionOutcome{}, err
	}

	bar.Finish()
	if window != nil {
		window.ShowSummary(outcome)
	}
	return outcome, nil
}

func describe(outcome entity.SessionOutcome) string {
	if !outcome.IsResolved() {
		return fmt.Sprintf("No emotion detected (%s)", outcome.Reason)
	}
	return fmt.Sprintf("Detected Emotion: %s\n%s", outcome.Emotion, outcome.Message)
}
