package matrix

import (
	"fmt"

	"github.com/boombuler/barcode/qr"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
)

// Yeqown encodes with github.com/yeqown/go-qrcode/v2.
type Yeqown struct{}

// NewYeqownCode builds the library's QR code object for payload at level.
func NewYeqownCode(payload string, level Level) (*qrcode.QRCode, error) {
	if err := checkPayload(payload); err != nil {
		return nil, err
	}
	var opt qrcode.EncodeOption
	switch level {
	case LevelL:
		opt = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQ:
		opt = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelH:
		opt = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		opt = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
	qrc, err := qrcode.NewWith(payload, opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return qrc, nil
}

func (Yeqown) Encode(payload string, level Level) (Matrix, error) {
	qrc, err := NewYeqownCode(payload, level)
	if err != nil {
		return Matrix{}, err
	}
	w := &gridWriter{}
	if err := qrc.Save(w); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return New(w.rows)
}

// gridWriter is a qrcode.Writer that keeps the bare module grid instead of
// producing an image.
type gridWriter struct {
	rows [][]bool
}

func (w *gridWriter) Write(mat qrcode.Matrix) error {
	w.rows = make([][]bool, mat.Height())
	for i := range w.rows {
		w.rows[i] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.rows[y][x] = v.IsSet()
	})
	return nil
}

func (w *gridWriter) Close() error { return nil }

// Skip2 encodes with github.com/skip2/go-qrcode.
type Skip2 struct{}

func (Skip2) Encode(payload string, level Level) (Matrix, error) {
	if err := checkPayload(payload); err != nil {
		return Matrix{}, err
	}
	var lvl skip2.RecoveryLevel
	switch level {
	case LevelL:
		lvl = skip2.Low
	case LevelQ:
		lvl = skip2.High
	case LevelH:
		lvl = skip2.Highest
	default:
		lvl = skip2.Medium
	}
	q, err := skip2.New(payload, lvl)
	if err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	q.DisableBorder = true
	return New(q.Bitmap())
}

// Boombuler encodes with github.com/boombuler/barcode/qr.
type Boombuler struct{}

func (Boombuler) Encode(payload string, level Level) (Matrix, error) {
	if err := checkPayload(payload); err != nil {
		return Matrix{}, err
	}
	var lvl qr.ErrorCorrectionLevel
	switch level {
	case LevelL:
		lvl = qr.L
	case LevelQ:
		lvl = qr.Q
	case LevelH:
		lvl = qr.H
	default:
		lvl = qr.M
	}
	code, err := qr.Encode(payload, lvl, qr.Auto)
	if err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	b := code.Bounds()
	rows := make([][]bool, b.Dy())
	for y := range rows {
		rows[y] = make([]bool, b.Dx())
		for x := range rows[y] {
			r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
			rows[y][x] = r < 0x8000
		}
	}
	return New(rows)
}
