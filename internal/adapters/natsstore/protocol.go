package natsstore

import (
	"strconv"

	"github.com/nats-io/nats.go"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/zerr"
)

// Message headers.
const (
	HeaderAction       = "Sassline-Action"
	HeaderWorkspace    = "Sassline-Workspace"
	HeaderPath         = "Sassline-Path"
	HeaderForceRemote  = "Sassline-Force-Remote"
	HeaderWantRevision = "Sassline-Want-Revision"
	HeaderRevisioned   = "Sassline-Revisioned"
	HeaderStatus       = "Sassline-Status"
	HeaderError        = "Sassline-Error"
	HeaderSeq          = "Sassline-Seq"
	HeaderFinal        = "Sassline-Final"
	HeaderRevision     = "Sassline-Revision"
)

// Actions.
const (
	ActionGet  = "get"
	ActionSave = "save"
)

// Reply statuses.
const (
	StatusOK               = "ok"
	StatusNotFound         = "not-found"
	StatusUnknownWorkspace = "unknown-workspace"
	StatusError            = "error"
)

// Request is a decoded store request.
type Request struct {
	Action       string
	WorkspaceID  string
	Path         string
	ForceRemote  bool
	WantRevision bool
	Revisioned   bool
	Data         []byte
}

// EncodeRequest builds the message for req addressed to subject.
func EncodeRequest(subject, reply string, req Request) *nats.Msg {
	msg := nats.NewMsg(subject)
	msg.Reply = reply
	msg.Data = req.Data
	msg.Header.Set(HeaderAction, req.Action)
	msg.Header.Set(HeaderWorkspace, req.WorkspaceID)
	msg.Header.Set(HeaderPath, req.Path)
	msg.Header.Set(HeaderForceRemote, strconv.FormatBool(req.ForceRemote))
	msg.Header.Set(HeaderWantRevision, strconv.FormatBool(req.WantRevision))
	msg.Header.Set(HeaderRevisioned, strconv.FormatBool(req.Revisioned))
	return msg
}

// DecodeRequest reads a store request from msg.
func DecodeRequest(msg *nats.Msg) (Request, error) {
	if msg.Header == nil {
		return Request{}, zerr.New("request has no headers")
	}
	req := Request{
		Action:       msg.Header.Get(HeaderAction),
		WorkspaceID:  msg.Header.Get(HeaderWorkspace),
		Path:         msg.Header.Get(HeaderPath),
		ForceRemote:  msg.Header.Get(HeaderForceRemote) == "true",
		WantRevision: msg.Header.Get(HeaderWantRevision) == "true",
		Revisioned:   msg.Header.Get(HeaderRevisioned) == "true",
		Data:         msg.Data,
	}
	if req.Action != ActionGet && req.Action != ActionSave {
		return Request{}, zerr.With(zerr.New("unknown store action"), "action", req.Action)
	}
	return req, nil
}

// Reply is one decoded reply message.
type Reply struct {
	Status   string
	Error    string
	Seq      int
	Final    bool
	Revision string
	Data     []byte
}

// EncodeReply builds a reply message addressed to subject.
func EncodeReply(subject string, r Reply) *nats.Msg {
	msg := nats.NewMsg(subject)
	msg.Data = r.Data
	msg.Header.Set(HeaderStatus, r.Status)
	msg.Header.Set(HeaderSeq, strconv.Itoa(r.Seq))
	msg.Header.Set(HeaderFinal, strconv.FormatBool(r.Final))
	if r.Error != "" {
		msg.Header.Set(HeaderError, r.Error)
	}
	if r.Revision != "" {
		msg.Header.Set(HeaderRevision, r.Revision)
	}
	return msg
}

// DecodeReply reads a reply from msg.
func DecodeReply(msg *nats.Msg) (Reply, error) {
	if msg.Header == nil {
		return Reply{}, zerr.New("reply has no headers")
	}
	seq, err := strconv.Atoi(msg.Header.Get(HeaderSeq))
	if err != nil {
		return Reply{}, zerr.With(zerr.Wrap(err, "invalid reply sequence"), "seq", msg.Header.Get(HeaderSeq))
	}
	return Reply{
		Status:   msg.Header.Get(HeaderStatus),
		Error:    msg.Header.Get(HeaderError),
		Seq:      seq,
		Final:    msg.Header.Get(HeaderFinal) == "true",
		Revision: msg.Header.Get(HeaderRevision),
		Data:     msg.Data,
	}, nil
}

// Err maps a non-ok reply status onto a domain error.
func (r Reply) Err() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusNotFound:
		return zerr.Wrap(domain.ErrDocumentNotFound, r.Error)
	case StatusUnknownWorkspace:
		return zerr.Wrap(domain.ErrUnknownWorkspace, r.Error)
	default:
		msg := r.Error
		if msg == "" {
			msg = "workspace store replied with status " + strconv.Quote(r.Status)
		}
		return zerr.New(msg)
	}
}

// SplitChunks cuts data into replies of at most size bytes. Empty data
// yields a single final reply.
func SplitChunks(data []byte, size int) []Reply {
	if size <= 0 || len(data) <= size {
		return []Reply{{Status: StatusOK, Seq: 0, Final: true, Data: data}}
	}
	replies := make([]Reply, 0, (len(data)+size-1)/size)
	for seq := 0; len(data) > 0; seq++ {
		n := min(size, len(data))
		replies = append(replies, Reply{Status: StatusOK, Seq: seq, Data: data[:n]})
		data = data[n:]
	}
	replies[len(replies)-1].Final = true
	return replies
}
