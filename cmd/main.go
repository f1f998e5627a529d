package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	echoping "github.com/drgkaleda/go-echoping"
	"github.com/drgkaleda/go-echoping/internal/config"
	"github.com/drgkaleda/go-echoping/internal/logger"
	"github.com/drgkaleda/go-echoping/internal/metrics"
)

func main() {
	var (
		configPath string
		host       string
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&host, "host", "", "Host name or IPv4 address to ping")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if host == "" {
		host = flag.Arg(0)
	}
	if host == "" {
		host = cfg.Target.Host
	}
	if host == "" {
		host, err = prompt("Enter the host to ping (e.g., google.com): ")
		if err != nil {
			log.WithError(err).Error("Failed to read host")
			os.Exit(1)
		}
	}

	dst, err := echoping.Resolve(host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Metrics.Enabled {
		go func() {
			log.WithField("addr", cfg.Metrics.Addr).Info("Starting metrics server")
			if err := metrics.Serve(cfg.Metrics.Addr, cfg.Metrics.Path); err != nil {
				log.WithError(err).Error("Metrics server error")
			}
		}()
	}

	p := echoping.New()
	p.Timeout = cfg.Target.Timeout
	p.VerifyChecksum = cfg.Target.VerifyChecksum
	p.SetLogger(logger.WithComponent(log, "pinger"))
	p.SetObserver(metrics.Observer{})

	session := &echoping.Session{
		Pinger:   p,
		Dst:      dst,
		ID:       uint16(os.Getpid() & 0xffff),
		Interval: cfg.Target.Interval,
		Count:    cfg.Target.Count,
		Reporter: &echoping.TextReporter{W: os.Stdout},
		Log:      logger.WithComponent(log, "session"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Pinging %s using Go:\n\n", dst)

	if err := session.Run(ctx); err != nil {
		log.WithError(err).Error("Ping failed")
		fmt.Fprintf(os.Stderr, "Ping failed: %v\n", err)
		stop()
		os.Exit(1)
	}

	if ctx.Err() != nil {
		fmt.Print("\nPing test interrupted. Exiting...\n\n")
	}
}

func prompt(msg string) (string, error) {
	fmt.Print(msg)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
