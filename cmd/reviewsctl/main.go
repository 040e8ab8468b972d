package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"reviewsclient/internal/charts"
	"reviewsclient/internal/config"
	"reviewsclient/internal/credential"
	"reviewsclient/internal/dispatch"
	apphttp "reviewsclient/internal/http"
	"reviewsclient/internal/logging"
	"reviewsclient/internal/notify"
	"reviewsclient/internal/poller"
	"reviewsclient/internal/reviews"
	"reviewsclient/internal/search"
	"reviewsclient/internal/telegram"
	"reviewsclient/internal/web"

	"golang.org/x/term"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "notifications":
		notificationsCmd(os.Args[2:])
	case "search":
		searchCmd(os.Args[2:])
	case "interact":
		interactCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "rate":
		rateCmd(os.Args[2:])
	case "login":
		loginCmd(os.Args[2:])
	case "logout":
		logoutCmd(os.Args[2:])
	case "chart":
		chartCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println(`reviewsctl - review site client

Usage:
  reviewsctl notifications watch              [-config config.yaml]
  reviewsctl notifications count              [-config config.yaml]
  reviewsctl notifications read <id>          [-config config.yaml]
  reviewsctl search [<query>]                 [-config config.yaml]
  reviewsctl interact <review-id> helpful|unhelpful
  reviewsctl report <action> -reason "text"
  reviewsctl rate <action> <1-5> [-text "review"]
  reviewsctl login <username>
  reviewsctl logout
  reviewsctl chart sentiment -positive N -negative N -neutral N [-o sentiment.png]
  reviewsctl chart top-products [-days 30] [-o top-products.png]

Without <query>, search reads one keystroke-state per line from stdin.

Examples:
  reviewsctl interact 42 helpful
  reviewsctl report /report/42/ -reason "spam"
  reviewsctl rate /products/7/add_review/ 5 -text "great"`)
}

// env is everything a subcommand needs, built from one config file.
type env struct {
	cfg      *config.Config
	view     *web.Terminal
	dispatch *dispatch.Dispatcher
	client   *reviews.Client
}

func setup(cfgPath string) *env {
	cfg, err := config.Load(cfgPath)
	if err != nil && cfg == nil {
		log.Fatalf("config: %v", err)
	}
	slog.SetDefault(logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}))
	if err != nil {
		if !config.IsNotExist(err) {
			log.Fatalf("config: %v", err)
		}
		slog.Debug("config.defaults", "path", cfgPath)
	}

	httpClient := apphttp.NewClient(cfg.HTTP.Timeout)
	creds, err := credential.FromConfig(cfg, httpClient)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	d, err := dispatch.New(httpClient, cfg.BaseURL, creds)
	if err != nil {
		log.Fatalf("dispatch: %v", err)
	}
	view, err := web.NewTerminal(os.Stdout)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	return &env{
		cfg:      cfg,
		view:     view,
		dispatch: d,
		client:   reviews.NewClient(d, view),
	}
}

// signalContext carries a logger tagged with the running command.
func signalContext(cmd string) (context.Context, context.CancelFunc) {
	ctx := logging.With(context.Background(), "cmd", cmd)
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

func notificationsCmd(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	fs := flag.NewFlagSet("notifications "+args[0], flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	_ = fs.Parse(reorderArgs(args[1:]))
	e := setup(*cfgPath)

	ctx, cancel := signalContext(fs.Name())
	defer cancel()

	switch args[0] {
	case "watch":
		n := notify.Multi{telegram.New(e.cfg.Telegram.BotToken, e.cfg.Telegram.ChatID)}
		p := poller.New(e.client, e.view, n, e.cfg.Notifications.PollInterval)
		p.Immediate = true
		p.Run(ctx)
	case "count":
		c, err := e.client.UnreadCount(ctx)
		if err != nil {
			log.Fatalf("unread count: %v", err)
		}
		e.view.SetBadge(c, c > 0)
	case "read":
		rest := fs.Args()
		if len(rest) < 1 {
			fmt.Println("missing <id>")
			os.Exit(2)
		}
		if err := e.client.MarkAsRead(ctx, rest[0]); err != nil {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func searchCmd(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	_ = fs.Parse(reorderArgs(args))
	e := setup(*cfgPath)

	ctx, cancel := signalContext(fs.Name())
	defer cancel()

	s := search.New(e.dispatch, e.view)
	s.MinLength = e.cfg.Search.MinLength

	if q := strings.Join(fs.Args(), " "); q != "" {
		if !s.Input(ctx, q) {
			fmt.Printf("query must be longer than %d characters\n", s.MinLength)
			os.Exit(2)
		}
		s.Wait()
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			s.Dismiss()
			continue
		}
		s.Input(ctx, line)
	}
	s.Wait()
}

func interactCmd(args []string) {
	fs := flag.NewFlagSet("interact", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	_ = fs.Parse(reorderArgs(args))

	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Println("usage: reviewsctl interact <review-id> helpful|unhelpful")
		os.Exit(2)
	}
	var helpful bool
	switch strings.ToLower(rest[1]) {
	case "helpful", "yes", "true":
		helpful = true
	case "unhelpful", "no", "false":
	default:
		fmt.Println("vote must be helpful or unhelpful")
		os.Exit(2)
	}
	e := setup(*cfgPath)
	ctx, cancel := signalContext(fs.Name())
	defer cancel()

	if _, err := e.client.Interact(ctx, reviews.Interaction{ReviewID: rest[0], Helpful: helpful}); err != nil {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	var (
		cfgPath = fs.String("config", "config.yaml", "path to config file")
		reason  = fs.String("reason", "", "why the review is reported")
	)
	_ = fs.Parse(reorderArgs(args))

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Println("usage: reviewsctl report <action> -reason \"text\"")
		os.Exit(2)
	}
	e := setup(*cfgPath)
	ctx, cancel := signalContext(fs.Name())
	defer cancel()

	form := url.Values{}
	if r := strings.TrimSpace(*reason); r != "" {
		form.Set("reason", r)
	}
	if err := e.client.Report(ctx, rest[0], form); err != nil {
		if errors.Is(err, reviews.ErrNotReportAction) {
			fmt.Println(err)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func rateCmd(args []string) {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	var (
		cfgPath = fs.String("config", "config.yaml", "path to config file")
		text    = fs.String("text", "", "review text")
	)
	_ = fs.Parse(reorderArgs(args))

	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Println("usage: reviewsctl rate <action> <1-5> [-text \"review\"]")
		os.Exit(2)
	}
	stars, err := strconv.Atoi(rest[1])
	if err != nil {
		fmt.Println("rating must be an integer between 1 and 5")
		os.Exit(2)
	}
	e := setup(*cfgPath)
	ctx, cancel := signalContext(fs.Name())
	defer cancel()

	form := reviews.NewRatingForm(rest[0])
	if err := e.client.SubmitRating(ctx, form, reviews.Rating{Rating: stars, Text: *text}); err != nil {
		if errors.Is(err, reviews.ErrInvalidRating) {
			fmt.Println(err)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func loginCmd(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	_ = fs.Parse(reorderArgs(args))

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Println("missing <username>")
		os.Exit(2)
	}
	username := strings.TrimSpace(rest[0])
	e := setup(*cfgPath)
	pw := promptPassword("Password: ")

	ctx, cancel := signalContext(fs.Name())
	defer cancel()
	store := credential.NewTokenStore(e.cfg.Auth.TokenFile)
	if err := e.client.Login(ctx, store, username, pw); err != nil {
		log.Fatalf("login: %v", err)
	}
	if exp, err := credential.TokenExpiry(mustGet(store, credential.AccessTokenKey)); err == nil {
		fmt.Printf("ok: logged in as %s (token valid until %s)\n", username, exp.Local().Format("2006-01-02 15:04"))
		return
	}
	fmt.Printf("ok: logged in as %s\n", username)
}

func logoutCmd(args []string) {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	_ = fs.Parse(reorderArgs(args))
	e := setup(*cfgPath)
	if err := reviews.Logout(credential.NewTokenStore(e.cfg.Auth.TokenFile)); err != nil {
		log.Fatalf("logout: %v", err)
	}
	fmt.Println("ok: logged out")
}

func mustGet(store *credential.TokenStore, key string) string {
	v, err := store.Get(key)
	if err != nil {
		log.Fatalf("token store: %v", err)
	}
	return v
}

func promptPassword(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after input
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	return strings.TrimSpace(string(b))
}

func chartCmd(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	fs := flag.NewFlagSet("chart "+args[0], flag.ExitOnError)
	var (
		cfgPath  = fs.String("config", "config.yaml", "path to config file")
		out      = fs.String("o", "", "output PNG path")
		positive = fs.Int("positive", 0, "positive reviews")
		negative = fs.Int("negative", 0, "negative reviews")
		neutral  = fs.Int("neutral", 0, "neutral reviews")
		days     = fs.Int("days", 30, "period in days")
	)
	_ = fs.Parse(reorderArgs(args[1:]))

	switch args[0] {
	case "sentiment":
		path := orDefault(*out, "sentiment.png")
		writePNG(path, func(f *os.File) error {
			return charts.RenderSentiment(f, charts.Sentiment{Positive: *positive, Negative: *negative, Neutral: *neutral})
		})
	case "top-products":
		e := setup(*cfgPath)
		ctx, cancel := signalContext(fs.Name())
		defer cancel()
		products, err := e.client.TopRatedProducts(ctx, *days)
		if err != nil {
			log.Fatalf("top products: %v", err)
		}
		labels := make([]string, len(products))
		ratings := make([]float64, len(products))
		for i, p := range products {
			labels[i], ratings[i] = p.ProductName, p.AverageRating
		}
		path := orDefault(*out, "top-products.png")
		writePNG(path, func(f *os.File) error {
			return charts.RenderTopProducts(f, labels, ratings)
		})
	default:
		usage()
		os.Exit(2)
	}
}

func writePNG(path string, render func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		log.Fatalf("render: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", path, err)
	}
	fmt.Printf("ok: wrote %s\n", path)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func reorderArgs(args []string) []string {
	var flags []string
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg != "-" && arg != "--" && arg[0] == '-' {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && i+1 < len(args) && (len(args[i+1]) == 0 || args[i+1][0] != '-') {
				flags = append(flags, args[i+1])
				i++
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return append(flags, positional...)
}
