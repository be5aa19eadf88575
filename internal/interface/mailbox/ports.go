package mailbox

import (
	"context"
	"crypto/tls"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"

	"travelmail-service/internal/domain/entity"
)

// Conn is the subset of the IMAP client the watcher drives. Tests swap
// in a fake.
type Conn interface {
	Login(username, password string) error
	Authenticate(mech sasl.Client) error
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	Idle(stop <-chan struct{}, opts *client.IdleOptions) error
	SetUpdates(ch chan<- client.Update)
	Logout() error
}

// DialFunc opens a connection to an IMAP server
type DialFunc func(addr string, tlsConfig *tls.Config) (Conn, error)

// Sink receives parsed messages from the watcher
type Sink interface {
	Deliver(ctx context.Context, msg *entity.Message) error
}

// DialTLS is the production DialFunc
func DialTLS(addr string, tlsConfig *tls.Config) (Conn, error) {
	c, err := client.DialTLS(addr, tlsConfig)
	if err != nil {
		return nil, err
	}
	return &tlsConn{c}, nil
}

type tlsConn struct {
	*client.Client
}

func (c *tlsConn) SetUpdates(ch chan<- client.Update) {
	c.Client.Updates = ch
}
