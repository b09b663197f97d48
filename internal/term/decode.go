package term

import (
	"bufio"
	"unicode/utf8"

	"github.com/dshills/quill/internal/key"
)

// Decoder turns a byte stream from the tty into key.Event values, handling
// UTF-8 multi-byte runes, ASCII control codes, and the common ANSI escape
// sequences for arrows/Home/End/Delete/PageUp/PageDown. Function-key
// sequences are not recognized and decode as Escape. It holds no
// terminfo-specific capability lookups; the terminfo and dumb back-ends
// both use it as is.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r *bufio.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next blocks for and decodes one event. It never returns KeyNone.
func (d *Decoder) Next() (key.Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return key.Event{}, err
	}

	switch {
	case b == 0x1b:
		return d.decodeEscape()
	case b == '\r' || b == '\n':
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone), nil
	case b == '\t':
		return key.NewSpecialEvent(key.KeyTab, key.ModNone), nil
	case b == 0x7f || b == 0x08:
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone), nil
	case b < 0x20:
		// C0 control code: Ctrl-<letter>, a-z mapped from 1-26.
		r := rune(b) + 'a' - 1
		return key.Ctrl(r), nil
	case b < 0x80:
		return key.NewRuneEvent(rune(b), key.ModNone), nil
	default:
		return d.decodeUTF8Continuation(b)
	}
}

func (d *Decoder) decodeUTF8Continuation(first byte) (key.Event, error) {
	n := utf8SeqLen(first)
	buf := make([]byte, n)
	buf[0] = first
	for i := 1; i < n; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return key.Event{}, err
		}
		buf[i] = b
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		r = rune(first)
	}
	return key.NewRuneEvent(r, key.ModNone), nil
}

func utf8SeqLen(first byte) int {
	switch {
	case first&0xe0 == 0xc0:
		return 2
	case first&0xf0 == 0xe0:
		return 3
	case first&0xf8 == 0xf0:
		return 4
	default:
		return 1
	}
}

// decodeEscape handles a byte following ESC: either a bare Escape key (no
// more bytes ready), an Alt-modified key (ESC <char>), or a CSI/SS3
// sequence (ESC [ ... / ESC O ...).
func (d *Decoder) decodeEscape() (key.Event, error) {
	if d.r.Buffered() == 0 {
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
	}
	b, err := d.r.Peek(1)
	if err != nil || len(b) == 0 {
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
	}
	switch b[0] {
	case '[':
		d.r.ReadByte()
		return d.decodeCSI()
	case 'O':
		d.r.ReadByte()
		return d.decodeSS3()
	default:
		next, _, err := d.r.ReadRune()
		if err != nil {
			return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
		}
		return key.Alt(next), nil
	}
}

func (d *Decoder) decodeSS3() (key.Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return key.Event{}, err
	}
	switch b {
	case 'A':
		return key.NewSpecialEvent(key.KeyUp, key.ModNone), nil
	case 'B':
		return key.NewSpecialEvent(key.KeyDown, key.ModNone), nil
	case 'C':
		return key.NewSpecialEvent(key.KeyRight, key.ModNone), nil
	case 'D':
		return key.NewSpecialEvent(key.KeyLeft, key.ModNone), nil
	case 'H':
		return key.NewSpecialEvent(key.KeyHome, key.ModNone), nil
	case 'F':
		return key.NewSpecialEvent(key.KeyEnd, key.ModNone), nil
	default:
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
	}
}

// decodeCSI decodes "ESC [" sequences: arrows, Home/End, and the
// "<number> ~" family (Delete, PageUp/Down, etc.).
func (d *Decoder) decodeCSI() (key.Event, error) {
	var params []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return key.Event{}, err
		}
		if b >= 0x40 && b <= 0x7e {
			return finishCSI(params, b)
		}
		params = append(params, b)
	}
}

func finishCSI(params []byte, final byte) (key.Event, error) {
	switch final {
	case 'A':
		return key.NewSpecialEvent(key.KeyUp, key.ModNone), nil
	case 'B':
		return key.NewSpecialEvent(key.KeyDown, key.ModNone), nil
	case 'C':
		return key.NewSpecialEvent(key.KeyRight, key.ModNone), nil
	case 'D':
		return key.NewSpecialEvent(key.KeyLeft, key.ModNone), nil
	case 'H':
		return key.NewSpecialEvent(key.KeyHome, key.ModNone), nil
	case 'F':
		return key.NewSpecialEvent(key.KeyEnd, key.ModNone), nil
	case '~':
		switch string(params) {
		case "1", "7":
			return key.NewSpecialEvent(key.KeyHome, key.ModNone), nil
		case "3":
			return key.NewSpecialEvent(key.KeyDelete, key.ModNone), nil
		case "4", "8":
			return key.NewSpecialEvent(key.KeyEnd, key.ModNone), nil
		case "5":
			return key.NewSpecialEvent(key.KeyPageUp, key.ModNone), nil
		case "6":
			return key.NewSpecialEvent(key.KeyPageDown, key.ModNone), nil
		}
	}
	return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
}
