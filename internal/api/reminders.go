package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leafkeeper/leafkeeper-client/internal/schedule"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

const reminderPath = "/reminder/reminder/v1/reminder"

// NewReminderPayload fills every key the reminder service expects. DueAt is
// normalized to the wire format (nil when blank or unparsable), DueDay is
// cleaned up, and a proxy phone number gets the default calling code when
// the reminder is delegated.
func NewReminderPayload(req types.CreateReminderRequest) types.ReminderPayload {
	p := types.ReminderPayload{
		Name:     req.Name,
		Notes:    req.Notes,
		DueAt:    normalizeDueAt(req.DueAt),
		DueDay:   schedule.NormalizeDueDays(req.DueDay),
		IsActive: true,
		Proxy:    req.Proxy,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsProxy != nil {
		p.IsProxy = *req.IsProxy
	}
	if p.IsProxy {
		p.Proxy = formatProxy(p.Proxy)
	}
	return p
}

// ReminderUpdateBody holds only the fields set on req.
func ReminderUpdateBody(req types.UpdateReminderRequest) map[string]any {
	body := map[string]any{}
	if req.Name != nil {
		body["name"] = *req.Name
	}
	if req.Notes != nil {
		body["notes"] = *req.Notes
	}
	if req.DueAt != nil {
		body["dueAt"] = normalizeDueAt(*req.DueAt)
	}
	if req.DueDay != nil {
		body["dueDay"] = schedule.NormalizeDueDays(req.DueDay)
	}
	if req.IsActive != nil {
		body["isActive"] = *req.IsActive
	}
	if req.IsProxy != nil {
		body["isProxy"] = *req.IsProxy
	}
	if req.Proxy != nil {
		// Only an explicit isProxy=false sends the number raw.
		proxy := req.Proxy
		if req.IsProxy == nil || *req.IsProxy {
			proxy = formatProxy(proxy)
		}
		body["proxy"] = *proxy
	}
	return body
}

// CreateReminder creates a reminder from the full payload.
func CreateReminder(ctx context.Context, r *Requester, req types.CreateReminderRequest) (*types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Post(ctx, reminderPath+"/create", NewReminderPayload(req), &raw); err != nil {
		return nil, err
	}
	return decodeReminder(raw)
}

// GetReminder fetches one reminder.
func GetReminder(ctx context.Context, r *Requester, id string) (*types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(id, "reminderId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, reminderPath+idQuery(id), &raw); err != nil {
		return nil, err
	}
	return decodeReminder(raw)
}

// ListReminders fetches every reminder of the signed-in user.
func ListReminders(ctx context.Context, r *Requester) ([]types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, "/reminder/reminder/v1/reminders", &raw); err != nil {
		return nil, err
	}
	return decodeReminders(raw)
}

// ListDueReminders fetches reminders falling due within window from now.
// The window is sent in whole seconds.
func ListDueReminders(ctx context.Context, r *Requester, window time.Duration) ([]types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := url.Values{"windowSec": {strconv.FormatInt(int64(window/time.Second), 10)}}
	var raw json.RawMessage
	if err := r.Get(ctx, "/reminder/reminder/v1/reminders/due"+Query(values), &raw); err != nil {
		return nil, err
	}
	return decodeReminders(raw)
}

// UpdateReminder sends only the fields set on req. A nil reminder is
// returned when the service acknowledges without a body.
func UpdateReminder(ctx context.Context, r *Requester, id string, req types.UpdateReminderRequest) (*types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(id, "reminderId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Put(ctx, reminderPath+idQuery(id), ReminderUpdateBody(req), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return decodeReminder(raw)
}

// DeleteReminder removes a reminder.
func DeleteReminder(ctx context.Context, r *Requester, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := requireID(id, "reminderId"); err != nil {
		return err
	}
	return r.Delete(ctx, reminderPath+"/"+pathID(id), nil)
}

func normalizeDueAt(input string) *string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return schedule.NormalizeDueAtInput(input)
}

func formatProxy(phone *string) *string {
	if phone == nil {
		return nil
	}
	formatted := schedule.FormatProxyPhone(*phone)
	return &formatted
}

func decodeReminder(raw []byte) (*types.Reminder, error) {
	w, err := types.DecodeObject[types.ReminderWire](raw, "reminder")
	if err != nil {
		return nil, invalid("reminder", err)
	}
	rem := types.ReminderFromWire(w)
	return &rem, nil
}

func decodeReminders(raw []byte) ([]types.Reminder, error) {
	wires, err := types.DecodeList[types.ReminderWire](raw, "reminders")
	if err != nil {
		return nil, invalid("reminders", err)
	}
	out := make([]types.Reminder, 0, len(wires))
	for _, w := range wires {
		out = append(out, types.ReminderFromWire(w))
	}
	return out, nil
}
