package calculator

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is a complete, consistent view of one calculator after an edit.
type Snapshot struct {
	SessionID      string      `json:"session_id"`
	Revision       uint64      `json:"revision"`
	Field          Field       `json:"field"`
	At             time.Time   `json:"at"`
	Input          Input       `json:"input"`
	Output         Output      `json:"output"`
	TargetCurrency NullFloat64 `json:"expected_price_target"`
	TargetTokens   NullFloat64 `json:"expected_price_target_tokens"`
}

// Listener receives a snapshot after each edit that changed the input.
type Listener func(Snapshot)

type subscriber struct {
	id int
	fn Listener
}

// Session owns the input of one calculator for the lifetime of an editing
// session. It is not safe for concurrent use.
type Session struct {
	id        string
	input     Input
	output    Output
	revision  uint64
	lastField Field
	changedAt time.Time

	subscribers []subscriber
	nextSubID   int

	// pending holds snapshots of edits made by a listener while an earlier
	// snapshot is still being delivered.
	pending   []Snapshot
	notifying bool

	logger *zap.Logger
	now    func() time.Time
}

// NewSession starts a session with the given input.
func NewSession(in Input, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		input:     in,
		output:    Derive(in),
		changedAt: time.Now(),
		logger:    logger.Named("calculator").With(zap.String("session_id", id)),
		now:       time.Now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Input returns a copy of the current input.
func (s *Session) Input() Input { return s.input }

// Output returns the outputs derived from the current input.
func (s *Session) Output() Output { return s.output }

// Revision counts the edits applied so far.
func (s *Session) Revision() uint64 { return s.revision }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID:      s.id,
		Revision:       s.revision,
		Field:          s.lastField,
		At:             s.changedAt,
		Input:          s.input,
		Output:         s.output,
		TargetCurrency: s.input.Target.Currency(),
		TargetTokens:   s.input.Target.Tokens(),
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) SetTokenName(name string) {
	s.apply(FieldTokenName, func(in *Input) { in.TokenName = name })
}

// SetCurrentPrice changes the price. The price target keeps both of its
// views; they are only re-derived when the target itself is edited.
func (s *Session) SetCurrentPrice(v float64) {
	s.apply(FieldCurrentPrice, func(in *Input) { in.CurrentPrice = v })
}

func (s *Session) SetCirculatingSupply(v float64) {
	s.apply(FieldCirculatingSupply, func(in *Input) { in.CirculatingSupply = v })
}

func (s *Session) SetTotalSupply(v float64) {
	s.apply(FieldTotalSupply, func(in *Input) { in.TotalSupply = v })
}

func (s *Session) SetMarketCap(v float64) {
	s.apply(FieldMarketCap, func(in *Input) { in.MarketCap = v })
}

func (s *Session) SetInvestmentAmount(v float64) {
	s.apply(FieldInvestmentAmount, func(in *Input) { in.InvestmentAmount = v })
}

func (s *Session) SetUpcomingUnlock(v float64) {
	s.apply(FieldUpcomingUnlock, func(in *Input) { in.UpcomingUnlock = v })
}

func (s *Session) SetTradingFees(v float64) {
	s.apply(FieldTradingFees, func(in *Input) { in.TradingFees = v })
}

// SetTargetCurrency edits the dollar price target; the token view becomes
// v / price, or unset when the price is zero. An unset v clears the target.
func (s *Session) SetTargetCurrency(v NullFloat64) {
	s.apply(FieldTargetCurrency, func(in *Input) {
		in.Target = CurrencyTarget(v, in.CurrentPrice)
	})
}

// SetTargetTokens edits the token price target; the dollar view becomes
// v × price. An unset v clears the target.
func (s *Session) SetTargetTokens(v NullFloat64) {
	s.apply(FieldTargetTokens, func(in *Input) {
		in.Target = TokenTarget(v, in.CurrentPrice)
	})
}

// Set applies raw user text to field, coercing it the way the form does:
// text is taken verbatim, numbers fall back to 0 and targets to unset.
func (s *Session) Set(field Field, raw string) {
	switch field {
	case FieldTokenName:
		s.SetTokenName(raw)
	case FieldCurrentPrice:
		s.SetCurrentPrice(ParseNumber(raw))
	case FieldCirculatingSupply:
		s.SetCirculatingSupply(ParseNumber(raw))
	case FieldTotalSupply:
		s.SetTotalSupply(ParseNumber(raw))
	case FieldMarketCap:
		s.SetMarketCap(ParseNumber(raw))
	case FieldInvestmentAmount:
		s.SetInvestmentAmount(ParseNumber(raw))
	case FieldTargetCurrency:
		s.SetTargetCurrency(ParseTarget(raw))
	case FieldTargetTokens:
		s.SetTargetTokens(ParseTarget(raw))
	case FieldUpcomingUnlock:
		s.SetUpcomingUnlock(ParseNumber(raw))
	case FieldTradingFees:
		s.SetTradingFees(ParseNumber(raw))
	default:
		s.logger.Warn("Ignoring edit of unknown field", zap.Stringer("field", field))
	}
}

// Text renders the current value of field for an input control.
func (s *Session) Text(field Field) string {
	in := s.input
	switch field {
	case FieldTokenName:
		return in.TokenName
	case FieldCurrentPrice:
		return plain(in.CurrentPrice)
	case FieldCirculatingSupply:
		return plain(in.CirculatingSupply)
	case FieldTotalSupply:
		return plain(in.TotalSupply)
	case FieldMarketCap:
		return plain(in.MarketCap)
	case FieldInvestmentAmount:
		return plain(in.InvestmentAmount)
	case FieldTargetCurrency:
		return plainOptional(in.Target.Currency())
	case FieldTargetTokens:
		return plainOptional(in.Target.Tokens())
	case FieldUpcomingUnlock:
		return plain(in.UpcomingUnlock)
	case FieldTradingFees:
		return plain(in.TradingFees)
	default:
		return ""
	}
}

// apply runs one logical edit: mutate a copy, recompute, then notify each
// subscriber once. Edits that leave the input unchanged are dropped. A
// listener may edit the session; that edit is delivered after the current
// snapshot reaches every subscriber, so all of them see revisions in order.
func (s *Session) apply(field Field, mutate func(*Input)) {
	next := s.input
	mutate(&next)
	if next == s.input {
		return
	}

	s.input = next
	s.output = Derive(next)
	s.revision++
	s.lastField = field
	s.changedAt = s.now()

	s.logger.Debug("Calculator input changed",
		zap.Stringer("field", field),
		zap.Uint64("revision", s.revision))

	if len(s.subscribers) == 0 {
		return
	}

	s.pending = append(s.pending, s.Snapshot())
	if s.notifying {
		return
	}
	s.notifying = true
	defer func() {
		s.notifying = false
		s.pending = nil
	}()

	for len(s.pending) > 0 {
		snap := s.pending[0]
		s.pending = s.pending[1:]

		subs := make([]subscriber, len(s.subscribers))
		copy(subs, s.subscribers)
		for _, sub := range subs {
			sub.fn(snap)
		}
	}
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plainOptional(v NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return plain(v.Float64)
}
