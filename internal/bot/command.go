package bot

import (
	"fmt"
	"strings"
	"time"

	apperrors "football-bot/pkg/app_errors"
	"football-bot/pkg/localtime"

	"github.com/google/uuid"
)

type CommandName string

const (
	CmdStart    CommandName = "start"
	CmdHelp     CommandName = "help"
	CmdMyID     CommandName = "myid"
	CmdChatID   CommandName = "chatid"
	CmdEvents   CommandName = "events"
	CmdNext     CommandName = "next"
	CmdSchedule CommandName = "schedule"
	CmdAddEvent CommandName = "addevent"
	CmdDelEvent CommandName = "delevent"
	CmdSetPlace CommandName = "setplace"
	CmdSetTime  CommandName = "settime"
)

// adminOnly 需要管理員權限的指令
var adminOnly = map[CommandName]bool{
	CmdAddEvent: true,
	CmdDelEvent: true,
	CmdSetPlace: true,
	CmdSetTime:  true,
}

// Command 解析後的指令；Args 為指令後的原始字串（已去頭尾空白）
// Target 為 "/cmd@botname" 中的 botname，沒有指定時為空
type Command struct {
	Name   CommandName
	Args   string
	Target string
}

func (c Command) AdminOnly() bool {
	return adminOnly[c.Name]
}

// AddressedTo 群組裡 "/cmd@OtherBot" 是給別的 bot 的
func (c Command) AddressedTo(username string) bool {
	if c.Target == "" || username == "" {
		return true
	}
	return strings.EqualFold(c.Target, username)
}

// ParseCommand 解析 "/cmd@botname args"；不是指令時回傳 false
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}

	head, args, _ := strings.Cut(text, " ")
	name, target, _ := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	if name == "" {
		return Command{}, false
	}

	return Command{
		Name:   CommandName(strings.ToLower(name)),
		Args:   strings.TrimSpace(args),
		Target: target,
	}, true
}

// AddEventArgs /addevent YYYY-MM-DD HH:MM [place]
type AddEventArgs struct {
	At    time.Time
	Place string
}

func ParseAddEvent(args string) (AddEventArgs, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return AddEventArgs{}, fmt.Errorf("%w: expected date and time", apperrors.ErrInvalidInput)
	}
	at, err := localtime.Parse(fields[0] + " " + fields[1])
	if err != nil {
		return AddEventArgs{}, err
	}
	return AddEventArgs{At: at, Place: strings.Join(fields[2:], " ")}, nil
}

func ParseEventID(args string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(args))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: event id %q", apperrors.ErrInvalidInput, args)
	}
	return id, nil
}

func ParsePlace(args string) (string, error) {
	place := strings.TrimSpace(args)
	if place == "" {
		return "", fmt.Errorf("%w: empty place", apperrors.ErrInvalidInput)
	}
	return place, nil
}
