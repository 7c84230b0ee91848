package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type PrettyHandlerOptions struct {
	slog.HandlerOptions
}

type PrettyTextLogHandler struct {
	slog.Handler
	writer io.Writer
	attrs  []slog.Attr
	group  string
	mtx    *sync.Mutex
}

func NewPrettyTextLogHandler(writer io.Writer, opts PrettyHandlerOptions) *PrettyTextLogHandler {
	return &PrettyTextLogHandler{
		Handler: slog.NewTextHandler(writer, &opts.HandlerOptions),
		writer:  writer,
		mtx:     &sync.Mutex{},
	}
}

func (h *PrettyTextLogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String()
	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.CyanString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := make([]string, 0, r.NumAttrs()+len(h.attrs))
	appendField := func(a slog.Attr) {
		fields = append(fields, fmt.Sprintf("%s=%v", color.HiBlackString(a.Key), a.Value.Any()))
	}
	for _, a := range h.attrs {
		appendField(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		appendField(a)
		return true
	})

	line := fmt.Sprintf("%s %s (%s) %s", r.Time.Format("15:04:05"), level, CODENAME_SHORT, r.Message)
	if len(fields) > 0 {
		line = line + " " + strings.Join(fields, " ")
	}

	h.mtx.Lock()
	defer h.mtx.Unlock()
	_, err := fmt.Fprintln(h.writer, line)
	return err
}

func (h *PrettyTextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	qualified := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		qualified[i] = a
	}
	return &PrettyTextLogHandler{
		Handler: h.Handler.WithAttrs(attrs),
		writer:  h.writer,
		attrs:   append(h.attrs[:len(h.attrs):len(h.attrs)], qualified...),
		group:   h.group,
		mtx:     h.mtx,
	}
}

func (h *PrettyTextLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyTextLogHandler{
		Handler: h.Handler.WithGroup(name),
		writer:  h.writer,
		attrs:   h.attrs,
		group:   group,
		mtx:     h.mtx,
	}
}

const CODENAME_SHORT = "drippay"

type multiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) io.Writer {
	return &multiWriter{writers: writers}
}

func (mw *multiWriter) Write(p []byte) (int, error) {
	for _, w := range mw.writers {
		// keep logging even if one sink fails
		w.Write(p)
	}
	return len(p), nil
}

// LogServer broadcasts log lines to all connected tcp clients. Used by
// the --log-server flag to expose logs to external collectors.
type LogServer struct {
	mtx     sync.Mutex
	clients []net.Conn
}

func NewLogServer(address string) *LogServer {
	server := &LogServer{}
	listener, err := net.Listen("tcp", address)
	if err != nil {
		slog.Warn("failed to start log server", "address", address, "error", err.Error())
		return server
	}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				continue
			}
			server.mtx.Lock()
			server.clients = append(server.clients, conn)
			server.mtx.Unlock()
		}
	}()
	return server
}

func (server *LogServer) Write(p []byte) (int, error) {
	server.mtx.Lock()
	defer server.mtx.Unlock()
	active := server.clients[:0]
	for _, client := range server.clients {
		if _, err := client.Write(p); err != nil {
			client.Close()
			continue
		}
		active = append(active, client)
	}
	server.clients = active
	return len(p), nil
}
