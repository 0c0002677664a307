// Package client plays one session on a terminal, local or over SSH.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/server"
	"github.com/tomz197/starfall/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server server.GameServer
	reader *bufio.Reader
	writer io.Writer
	opts   Options
}

// Options configures the client.
type Options struct {
	Username     string
	TermSizeFunc draw.TermSizeFunc
	Tuning       config.Tuning // A zero Field means config.Classic()
	Seed         uint64        // Zero picks a time-based seed
	ShowTitle    bool          // Wait on a title screen before playing
	IdleTimeout  time.Duration
	Events       loop.EventSink
	Logger       *log.Logger
}

// NewClient creates a new client registered through gs when it runs.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.Tuning.Field == (object.Field{}) {
		opts.Tuning = config.Classic()
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Client{server: gs, reader: r, writer: w, opts: opts}
}

// Run plays one session. Blocks until the player quits, the game-over screen
// is dismissed, the server shuts down or ctx is cancelled.
func (c *Client) Run(ctx context.Context) (res loop.Result, err error) {
	h, err := c.server.Register(ctx, c.opts.Username)
	if err != nil {
		fmt.Fprintf(c.writer, "Cannot start a game: %v. Please try again later.\r\n", err)
		return loop.Result{}, err
	}
	res.Reason = loop.EndCancelled
	defer func() { c.server.Unregister(h, res) }()

	field := c.opts.Tuning.Field
	renderer := draw.NewTerminalRenderer(c.writer, c.opts.TermSizeFunc, field.Width, field.Height)
	renderer.Open()
	defer renderer.Close()

	stream := input.StartStream(c.reader)

	runCtx, cancel := context.WithCancel(h.Context())
	defer cancel()
	go func() {
		select {
		case <-h.ShuttingDown():
			cancel()
		case <-runCtx.Done():
		}
	}()

	pacer := loop.NewFramePacer(config.GameOverFrameTime)
	if c.opts.ShowTitle {
		start, err := c.title(runCtx, renderer, stream, pacer)
		if err != nil {
			return res, err
		}
		if !start {
			res.Reason = loop.EndQuit
			if shuttingDown(h) {
				c.notice(h.Context(), renderer, stream, shutdownNotice)
			}
			return res, nil
		}
		stream.Reset()
	}

	res, err = loop.Run(runCtx, loop.Options{
		ID:          h.ID,
		Tuning:      c.opts.Tuning,
		Seed:        c.opts.Seed,
		Input:       stream,
		Drawer:      renderer,
		Events:      c.opts.Events,
		Logger:      c.opts.Logger,
		IdleTimeout: c.opts.IdleTimeout,
		Presenter: &loop.ScreenPresenter{
			Drawer: renderer,
			Input:  stream,
			Pacer:  pacer,
			Field:  field,
		},
	})
	if err != nil {
		return res, err
	}

	switch {
	case shuttingDown(h):
		c.notice(h.Context(), renderer, stream, shutdownNotice)
	case res.Reason == loop.EndIdle:
		c.notice(h.Context(), renderer, stream, idleNotice)
	}
	return res, nil
}

// title shows the title screen until the player confirms (true) or quits (false).
func (c *Client) title(ctx context.Context, d draw.Drawer, in loop.Input, pacer loop.Pacer) (bool, error) {
	for {
		if err := renderTitle(d, c.opts.Tuning); err != nil {
			return false, err
		}
		st := in.Sample()
		if st.Quit {
			return false, nil
		}
		if st.Confirm {
			return true, nil
		}
		if _, err := pacer.Wait(ctx); err != nil {
			return false, nil
		}
	}
}

// notice shows n for config.ShutdownNotice or until the player quits.
func (c *Client) notice(ctx context.Context, d draw.Drawer, in loop.Input, n notice) {
	pacer := loop.NewFramePacer(config.GameOverFrameTime)
	deadline := time.Now().Add(config.ShutdownNotice)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		if err := renderNotice(d, c.opts.Tuning.Field, n, remaining); err != nil {
			return
		}
		if in.Sample().Quit {
			return
		}
		if _, err := pacer.Wait(ctx); err != nil {
			return
		}
	}
}

func shuttingDown(h *server.Handle) bool {
	select {
	case <-h.ShuttingDown():
		return true
	default:
		return false
	}
}
