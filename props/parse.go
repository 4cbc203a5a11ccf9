package props

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// parse reads every key/value pair from r into a new Store.
// On any error the partially built Store is released and nil is returned.
func parse(ctx context.Context, r io.ByteScanner, o options) (*Store, error) {
	store := New()

	p := &parser{
		r:      r,
		pos:    Position{Offset: 0, Line: 1, Column: 1},
		maxLen: o.maxLength,
	}

	err := p.parseInto(store)
	if err != nil {
		store.Release()

		o.logger.TraceContext(ctx, "parse failed",
			slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("entry_count", store.Len()),
		slog.Int("line_count", p.pos.Line))

	return store, nil
}

// parser holds the tokenizer state for one properties source.
type parser struct {
	r      io.ByteScanner
	pos    Position // position of the next unread byte
	maxLen int      // maximum key or value length; 0 means unlimited
	err    error    // first non-EOF read error
}

// parseInto runs the top-level loop until end of input.
func (p *parser) parseInto(store *Store) error {
	for {
		p.skipWhitespace()

		c, ok := p.peek()
		if !ok {
			return p.readErr()
		}

		if c == '#' || c == '!' {
			p.skipLine()

			continue
		}

		pos := p.position()

		key, err := p.readKey()
		if err != nil {
			return err
		}

		p.readAssignment()

		value, err := p.readValue()
		if err != nil {
			return err
		}

		err = store.Set(key, value)
		if err != nil {
			return WrapError(err).WithPosition(pos)
		}
	}
}

// readKey reads bytes up to the first unescaped key terminator.
// Reaching end of input before a terminator yields the key read so far.
func (p *parser) readKey() (string, error) {
	var key strings.Builder

	start := p.position()

	for {
		c, ok := p.peek()
		if !ok || isKeyTerminator(c) {
			break
		}

		p.advance()

		if c == '\\' {
			c, ok = p.peek()
			if !ok {
				break // trailing backslash at EOF
			}

			p.advance()
		}

		err := p.append(&key, c, start, "key")
		if err != nil {
			return "", err
		}
	}

	return key.String(), p.readErr()
}

// readAssignment consumes the optional '=' or ':' between key and value
// together with any blanks around it.
func (p *parser) readAssignment() {
	p.skipBlanks()

	if c, ok := p.peek(); ok && (c == '=' || c == ':') {
		p.advance()
	}

	p.skipBlanks()
}

// readValue reads bytes up to the first unescaped line terminator, joining
// continuation lines.
func (p *parser) readValue() (string, error) {
	var value strings.Builder

	start := p.position()

	for {
		c, ok := p.peek()
		if !ok || isLineTerminator(c) {
			break
		}

		p.advance()

		if c == '\\' {
			c, ok = p.peek()
			if !ok {
				break // trailing backslash at EOF
			}

			if isLineTerminator(c) {
				p.skipLineTerminator()
				p.skipBlanks()

				continue
			}

			p.advance()
		}

		err := p.append(&value, c, start, "value")
		if err != nil {
			return "", err
		}
	}

	return value.String(), p.readErr()
}

// append adds c to b unless that would exceed the configured limit.
func (p *parser) append(
	b *strings.Builder,
	c byte,
	start Position,
	token string,
) error {
	if p.maxLen > 0 && b.Len() >= p.maxLen {
		return ErrTokenTooLong.WithPosition(start).With(
			slog.String("token", token),
			slog.Int("limit", p.maxLen),
		)
	}

	b.WriteByte(c)

	return nil
}

// Helper methods

// peek returns the next byte without consuming it.
// The second result is false at end of input or after a read error.
func (p *parser) peek() (byte, bool) {
	if p.err != nil {
		return 0, false
	}

	c, err := p.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			p.err = err
		}

		return 0, false
	}

	_ = p.r.UnreadByte()

	return c, true
}

// advance consumes the next byte.
func (p *parser) advance() {
	if p.err != nil {
		return
	}

	c, err := p.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			p.err = err
		}

		return
	}

	p.pos.Offset++

	if c == '\n' {
		p.pos.Line++
		p.pos.Column = 1
	} else {
		p.pos.Column++
	}
}

func (p *parser) position() Position {
	return p.pos
}

func (p *parser) readErr() error {
	if p.err == nil {
		return nil
	}

	return ErrReadInput.WithPosition(p.pos).Wrap(p.err)
}

func (p *parser) skipWhitespace() {
	for {
		c, ok := p.peek()
		if !ok || !isWhitespace(c) {
			return
		}

		p.advance()
	}
}

func (p *parser) skipBlanks() {
	for {
		c, ok := p.peek()
		if !ok || !isBlank(c) {
			return
		}

		p.advance()
	}
}

// skipLine consumes the rest of the current line, excluding its terminator.
func (p *parser) skipLine() {
	for {
		c, ok := p.peek()
		if !ok || isLineTerminator(c) {
			return
		}

		p.advance()
	}
}

// skipLineTerminator consumes one "\n", "\r", or "\r\n".
func (p *parser) skipLineTerminator() {
	c, ok := p.peek()
	if !ok {
		return
	}

	p.advance()

	if c == '\r' {
		if c, ok = p.peek(); ok && c == '\n' {
			p.advance()
		}
	}
}

// Character classification

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

func isLineTerminator(c byte) bool {
	return c == '\n' || c == '\r'
}

func isWhitespace(c byte) bool {
	return isBlank(c) || isLineTerminator(c) || c == '\v'
}

func isKeyTerminator(c byte) bool {
	return c == '=' || c == ':' || isBlank(c) || isLineTerminator(c)
}
