package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"travelmail-service/pkg/logger"
	"travelmail-service/pkg/metrics"
)

// Watcher connection states
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return "disconnected"
	}
}

// Config holds the mailbox connection settings
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	Folder        string
	TokenSource   oauth2.TokenSource // when set, XOAUTH2 replaces password login
	TLSConfig     *tls.Config
	ReconnectWait time.Duration
}

// Watcher maintains a long-lived IMAP session against a single folder,
// delivers every unseen message to the sink, and reconnects with a
// fixed delay after any failure.
type Watcher struct {
	cfg     Config
	dial    DialFunc
	sink    Sink
	logger  logger.Logger
	metrics *metrics.Metrics

	state      atomic.Int32
	connecting atomic.Bool
}

// NewWatcher creates a mailbox watcher
func NewWatcher(cfg Config, dial DialFunc, sink Sink, log logger.Logger, m *metrics.Metrics) *Watcher {
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 30 * time.Second
	}
	if dial == nil {
		dial = DialTLS
	}
	return &Watcher{
		cfg:     cfg,
		dial:    dial,
		sink:    sink,
		logger:  log,
		metrics: m,
	}
}

// State reports the current connection state
func (w *Watcher) State() State {
	return State(w.state.Load())
}

func (w *Watcher) setState(s State) {
	w.state.Store(int32(s))
}

// Run drives the watch loop until the context is cancelled. Each failed
// session is logged and retried after the configured wait; errors never
// escape to the caller.
func (w *Watcher) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		err := w.session(ctx)
		w.setState(StateDisconnected)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			w.logger.Error("Mailbox session ended", "error", err, "retryIn", w.cfg.ReconnectWait)
		}
		if w.metrics != nil {
			w.metrics.MailboxReconnects.Inc()
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.cfg.ReconnectWait):
		}
	}
}

// session runs one connect-authenticate-select-idle cycle. The CAS
// guard keeps a second attempt from running while one is in flight.
func (w *Watcher) session(ctx context.Context) error {
	if !w.connecting.CompareAndSwap(false, true) {
		return errors.New("session already in flight")
	}
	defer w.connecting.Store(false)

	w.setState(StateConnecting)
	addr := fmt.Sprintf("%s:%d", w.cfg.Host, w.cfg.Port)
	conn, err := w.dial(addr, w.cfg.TLSConfig)
	if err != nil {
		return errors.Wrap(err, "dialing mailbox")
	}
	defer conn.Logout()

	if err := w.authenticate(conn); err != nil {
		return errors.Wrap(err, "authenticating")
	}
	if _, err := conn.Select(w.cfg.Folder, false); err != nil {
		return errors.Wrapf(err, "selecting folder %s", w.cfg.Folder)
	}
	w.setState(StateReady)
	w.logger.Info("Mailbox session established", "host", w.cfg.Host, "folder", w.cfg.Folder)

	// Anything that arrived while we were away
	if err := w.fetchUnseen(ctx, conn); err != nil {
		return errors.Wrap(err, "initial unseen sweep")
	}

	updates := make(chan client.Update, 32)
	conn.SetUpdates(updates)

	return w.idleLoop(ctx, conn, updates)
}

// idleLoop alternates IDLE with fetches. The server cannot accept
// commands while idling, so the idle is stopped before every fetch and
// restarted after.
func (w *Watcher) idleLoop(ctx context.Context, conn Conn, updates <-chan client.Update) error {
	for {
		stop := make(chan struct{})
		idleDone := make(chan error, 1)
		go func() {
			idleDone <- conn.Idle(stop, &client.IdleOptions{
				LogoutTimeout: 25 * time.Minute,
				PollInterval:  time.Minute,
			})
		}()

		newMail := false
		stopped := false
		for !stopped {
			select {
			case <-ctx.Done():
				close(stop)
				<-idleDone
				return nil
			case err := <-idleDone:
				if err != nil {
					return errors.Wrap(err, "idle terminated")
				}
				stopped = true
			case upd := <-updates:
				if _, ok := upd.(*client.MailboxUpdate); ok {
					newMail = true
					close(stop)
					if err := <-idleDone; err != nil {
						return errors.Wrap(err, "stopping idle")
					}
					stopped = true
				}
			}
		}

		if newMail {
			if err := w.fetchUnseen(ctx, conn); err != nil {
				return errors.Wrap(err, "fetching new mail")
			}
		}
	}
}

func (w *Watcher) authenticate(conn Conn) error {
	if w.cfg.TokenSource != nil {
		token, err := w.cfg.TokenSource.Token()
		if err != nil {
			return errors.Wrap(err, "refreshing oauth token")
		}
		return conn.Authenticate(sasl.NewOAuthBearerClient(&sasl.OAuthBearerOptions{
			Username: w.cfg.Username,
			Token:    token.AccessToken,
			Host:     w.cfg.Host,
			Port:     w.cfg.Port,
		}))
	}
	return conn.Login(w.cfg.Username, w.cfg.Password)
}

// fetchUnseen searches for unseen messages and delivers each one to the
// sink. Fetching the body section without PEEK marks the message seen
// on the server, which is what keeps it out of the next search.
func (w *Watcher) fetchUnseen(ctx context.Context, conn Conn) error {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	uids, err := conn.UidSearch(criteria)
	if err != nil {
		return errors.Wrap(err, "searching unseen")
	}
	if len(uids) == 0 {
		return nil
	}
	w.logger.Info("Unseen messages found", "count", len(uids))

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)
	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchEnvelope, imap.FetchUid}

	ch := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- conn.UidFetch(seqset, items, ch)
	}()

	for msg := range ch {
		parsed, err := parseMessage(msg, section)
		if err != nil {
			w.logger.Warn("Skipping unparseable message", "uid", msg.Uid, "error", err)
			continue
		}
		if w.metrics != nil {
			w.metrics.MessagesFetched.Inc()
		}
		if err := w.sink.Deliver(ctx, parsed); err != nil {
			w.logger.Error("Failed to deliver message", "uid", msg.Uid, "error", err)
		}
	}

	if err := <-done; err != nil {
		return errors.Wrap(err, "fetching messages")
	}
	return nil
}
