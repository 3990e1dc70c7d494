package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/virtualhid"
)

// userDataMessage is the wire shape of one user_data frame's payload: a
// discriminated object, the field present indicating the message kind,
// mirroring config's own to-event JSON encoding.
type userDataMessage struct {
	ShellCommand      *string                            `json:"shell_command,omitempty"`
	SelectInputSource []eventvalue.InputSourceSpecifier `json:"select_input_source,omitempty"`
}

// DatagramSender implements postevent.Sender: HID reports go straight to
// the virtual HID client (C9), shell_command/select_input_source go out
// over this client's connection to the per-user helper process (C8).
type DatagramSender struct {
	HID    virtualhid.Client
	Client *Client
}

func (s *DatagramSender) PostKeyboardReport(report virtualhid.KeyboardInputReport) error {
	return s.HID.AsyncPostKeyboardInputReport(report)
}

func (s *DatagramSender) PostPointingReport(report virtualhid.PointingInputReport) error {
	return s.HID.AsyncPostPointingInputReport(report)
}

func (s *DatagramSender) SendShellCommand(cmd string) error {
	return s.sendUserData(userDataMessage{ShellCommand: &cmd})
}

func (s *DatagramSender) SendSelectInputSource(specs []eventvalue.InputSourceSpecifier) error {
	return s.sendUserData(userDataMessage{SelectInputSource: specs})
}

func (s *DatagramSender) sendUserData(msg userDataMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("ipc: encode user_data: %w", err)
	}
	s.Client.Send(payload, nil)
	return nil
}

// DecodeUserData is the helper a Client.Received callback uses to recover
// the application-level message from a raw user_data payload.
func DecodeUserData(payload []byte) (shellCommand string, selectInputSource []eventvalue.InputSourceSpecifier, err error) {
	var msg userDataMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return "", nil, fmt.Errorf("ipc: decode user_data: %w", err)
	}
	if msg.ShellCommand != nil {
		return *msg.ShellCommand, nil, nil
	}
	return "", msg.SelectInputSource, nil
}
