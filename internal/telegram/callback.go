package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"football-bot/internal/model"
	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
)

// CallbackKind inline 按鈕的種類
type CallbackKind string

const (
	CallbackJoin  CallbackKind = "join"
	CallbackExtra CallbackKind = "extra"

	callbackSep = ":"
	// MaxExtra 鍵盤上最多的 +N 按鈕
	MaxExtra = 3
)

// Callback 解析後的按鈕動作，之後只以型別分派，不再處理字串
type Callback struct {
	Kind    CallbackKind
	EventID uuid.UUID
	// Going 只對 join 有意義
	Going bool
	// Extra 只對 extra 有意義，1..MaxExtra
	Extra int
}

func JoinData(eventID uuid.UUID, going bool) string {
	answer := "no"
	if going {
		answer = "yes"
	}
	return strings.Join([]string{string(CallbackJoin), eventID.String(), answer}, callbackSep)
}

func ExtraData(eventID uuid.UUID, n int) string {
	return strings.Join([]string{string(CallbackExtra), eventID.String(), strconv.Itoa(n)}, callbackSep)
}

// ParseCallback 解析 "join:<id>:yes|no" 或 "extra:<id>:<n>"
func ParseCallback(data string) (Callback, error) {
	parts := strings.Split(data, callbackSep)
	if len(parts) != 3 {
		return Callback{}, fmt.Errorf("%w: callback %q", apperrors.ErrInvalidInput, data)
	}

	eventID, err := uuid.Parse(parts[1])
	if err != nil {
		return Callback{}, fmt.Errorf("%w: callback event id %q", apperrors.ErrInvalidInput, parts[1])
	}

	cb := Callback{Kind: CallbackKind(parts[0]), EventID: eventID}
	switch cb.Kind {
	case CallbackJoin:
		switch parts[2] {
		case "yes":
			cb.Going = true
		case "no":
		default:
			return Callback{}, fmt.Errorf("%w: join answer %q", apperrors.ErrInvalidInput, parts[2])
		}
	case CallbackExtra:
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 || n > MaxExtra {
			return Callback{}, fmt.Errorf("%w: extra count %q", apperrors.ErrInvalidInput, parts[2])
		}
		cb.Going = true
		cb.Extra = n
	default:
		return Callback{}, fmt.Errorf("%w: callback kind %q", apperrors.ErrInvalidInput, parts[0])
	}
	return cb, nil
}

// Status join yes 與 extra 都是 going
func (c Callback) Status() model.ParticipationStatus {
	if c.Going {
		return model.StatusGoing
	}
	return model.StatusNotGoing
}
