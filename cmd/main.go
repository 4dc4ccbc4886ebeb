package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/fzappa/pingrs/internal/config"
	"github.com/fzappa/pingrs/internal/exporter"
	"github.com/fzappa/pingrs/internal/logger"
	"github.com/fzappa/pingrs/internal/report"
	"github.com/fzappa/pingrs/pkg/pinger"
	"github.com/fzappa/pingrs/pkg/probe"
)

const (
	fullAppName = "Pingrs. "
	payloadTag  = "pingrs"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [options] <ipv4 address>\n\nOptions:\n", os.Args[0])
	flag.PrintDefaults()
}

// makePayload builds the echo request payload: an ascii tag followed
// by filler bytes up to the configured size
func makePayload(size uint) []byte {
	payload := []byte(payloadTag)
	if remain := int(size) - len(payload); remain > 0 {
		payload = append(payload, bytes.Repeat([]byte{1}, remain)...)
	}
	return payload
}

// parseTarget accepts plain IPv4 literals only. Hostnames and IPv6
// are usage errors.
func parseTarget(arg string) (netip.Addr, error) {
	target, err := netip.ParseAddr(arg)
	if err != nil {
		return netip.Addr{}, err
	}

	target = target.Unmap()
	if !target.Is4() {
		return netip.Addr{}, pinger.ErrInvalidAddr
	}

	return target, nil
}

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	execName := os.Args[0]

	showVersionAndExit := flag.Bool("version", false, "Show version and exit")
	count := flag.Uint("c", 0, "Stop after sending this many probes (0 = run until interrupted)")
	interval := flag.Duration("i", probe.DefaultInterval, "Interval between probes")
	timeout := flag.Duration("W", probe.DefaultTimeout, "Time to wait for each reply")

	flag.Usage = usage
	flag.Parse()

	if *showVersionAndExit {
		fmt.Printf("%s (%s):\t%s\n\n", fullAppName, execName, config.GetFullVersion())
		return
	}

	config.Init()
	defer config.Close()
	logger.SetupGlobalLoger(config.GetDebugLevel(), os.Stderr)

	if flag.NArg() != 1 {
		usage()
		exitCode = -22 // errno.h -EINVAL
		return
	}

	target, err := parseTarget(flag.Arg(0))
	if err != nil {
		logger.Error().Println(fullAppName, "invalid IPv4 address", flag.Arg(0))
		exitCode = -22 // errno.h -EINVAL
		return
	}

	p, err := pinger.New(target)
	if err != nil {
		logger.Error().Println(fullAppName, "socket setup failed:", err)
		logger.Error().Println(fullAppName, "raw sockets need `sudo` or CAP_NET_RAW")
		exitCode = -13 // errno.h -EACCES
		return
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	console := report.New(os.Stdout, target)
	clients := []probe.Client{console}

	if config.MetricsExporterEnabled() {
		collector := exporter.NewCollector(target)
		exp, err := exporter.New(config.MetricsExporterPort(), collector)
		if err != nil {
			logger.Error().Println(fullAppName, "could not create metrics exporter", err)
			exitCode = -12 // errno.h -ENOMEM
			return
		}
		exp.Run(ctx)
		clients = append(clients, collector)
	}

	payload := makePayload(config.GetPayloadSize())

	prb := probe.New(p, probe.Config{
		Target:   target,
		Count:    *count,
		Interval: *interval,
		Timeout:  *timeout,
		Payload:  payload,
	}, clients...)

	// Wait for SIGINT or SIGTERM to raise the stop flag. The loop
	// notices it at the next iteration boundary.
	var stop probe.Flag
	terminate := make(chan os.Signal, 1)
	signal.Notify(terminate, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-terminate
		logger.Info().Println(fullAppName, "stop requested, finishing current probe")
		stop.Stop()
	}()

	logger.Info().Println(fullAppName, execName, config.GetFullVersion(), "started.")
	console.Banner(len(payload))

	sum := prb.Run(&stop)
	console.Summary(sum)
}
