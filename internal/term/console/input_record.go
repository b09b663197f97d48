//go:build windows

package console

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/dshills/quill/internal/key"
)

const (
	keyEvent              = 0x0001
	windowBufferSizeEvent = 0x0004
)

// coord and the record layouts below mirror the Win32 INPUT_RECORD union
// as documented for ReadConsoleInputW; only the fields quill's decoder
// needs are declared.
type coord struct {
	X, Y int16
}

type keyEventRecord struct {
	bKeyDown          int32
	wRepeatCount      uint16
	wVirtualKeyCode   uint16
	wVirtualScanCode  uint16
	unicodeChar       uint16
	dwControlKeyState uint32
}

type windowBufferSizeRecord struct {
	size coord
}

// inputRecord is oversized to cover the largest union member
// (keyEventRecord is the biggest of the ones quill decodes).
type inputRecord struct {
	eventType uint16
	_         uint16 // alignment padding
	event     [16]byte
}

var (
	kernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInW = kernel32.NewProc("ReadConsoleInputW")
)

func readConsoleInput(h windows.Handle, rec *inputRecord, n *uint32) error {
	r1, _, e1 := procReadConsoleInW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(rec)),
		1,
		uintptr(unsafe.Pointer(n)),
	)
	if r1 == 0 {
		return e1
	}
	return nil
}

func (r *inputRecord) asKeyEvent() *keyEventRecord {
	return (*keyEventRecord)(unsafe.Pointer(&r.event[0]))
}

func (r *inputRecord) asWindowBufferSize() *windowBufferSizeRecord {
	return (*windowBufferSizeRecord)(unsafe.Pointer(&r.event[0]))
}

// decodeRecord converts one INPUT_RECORD into a key.Event. Key-up events
// and unrecognized record types are dropped (ok=false).
func decodeRecord(rec inputRecord) (key.Event, bool) {
	switch rec.eventType {
	case keyEvent:
		ke := rec.asKeyEvent()
		if ke.bKeyDown == 0 {
			return key.Event{}, false
		}
		return decodeKeyEvent(ke), true
	case windowBufferSizeEvent:
		return key.NewSpecialEvent(key.KeyResize, key.ModNone), true
	default:
		return key.Event{}, false
	}
}

const (
	vkBack   = 0x08
	vkTab    = 0x09
	vkReturn = 0x0d
	vkEscape = 0x1b
	vkPrior  = 0x21
	vkNext   = 0x22
	vkEnd    = 0x23
	vkHome   = 0x24
	vkLeft   = 0x25
	vkUp     = 0x26
	vkRight  = 0x27
	vkDown   = 0x28
	vkDelete = 0x2e

	leftCtrlPressed  = 0x0008
	rightCtrlPressed = 0x0004
	leftAltPressed   = 0x0002
	rightAltPressed  = 0x0001
)

func decodeKeyEvent(ke *keyEventRecord) key.Event {
	mods := key.ModNone
	if ke.dwControlKeyState&(leftCtrlPressed|rightCtrlPressed) != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if ke.dwControlKeyState&(leftAltPressed|rightAltPressed) != 0 {
		mods = mods.With(key.ModAlt)
	}

	switch ke.wVirtualKeyCode {
	case vkBack:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case vkTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case vkReturn:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case vkEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case vkPrior:
		return key.NewSpecialEvent(key.KeyPageUp, mods)
	case vkNext:
		return key.NewSpecialEvent(key.KeyPageDown, mods)
	case vkEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods)
	case vkHome:
		return key.NewSpecialEvent(key.KeyHome, mods)
	case vkLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods)
	case vkUp:
		return key.NewSpecialEvent(key.KeyUp, mods)
	case vkRight:
		return key.NewSpecialEvent(key.KeyRight, mods)
	case vkDown:
		return key.NewSpecialEvent(key.KeyDown, mods)
	case vkDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods)
	}

	if ke.unicodeChar != 0 {
		return key.NewRuneEvent(rune(ke.unicodeChar), mods)
	}
	return key.Event{}
}
