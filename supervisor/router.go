// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package supervisor

import (
	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/protocol"
)

// route delivers a data message written by the sender. The origin is always
// the sender: a forged origin is overwritten.
func (s *Supervisor) route(sender protocol.ActorID, data *protocol.Data) {
	if from, ok := data.Sender(); ok && from != sender {
		s.logger.Warnf("actor %s claimed to be %s, origin overwritten", sender, from)
	}
	_ = s.deliver(data.WithSender(sender))
}

// deliver hands the message over to the destination mailbox. Messages to an
// unknown destination or rejected by the mailbox are dropped as deadletters.
func (s *Supervisor) deliver(data *protocol.Data) error {
	message := protocol.NewDataMessage(data)

	sink, ok := s.registry.Lookup(data.To)
	if !ok {
		err := gerrors.NewErrActorNotFound(data.To.String())
		s.deadletter(data.To, message, err)
		return err
	}

	if err := sink.Enqueue(message); err != nil {
		s.deadletter(data.To, message, err)
		return err
	}

	s.routedCounter.Inc()
	return nil
}

func (s *Supervisor) deadletter(to protocol.ActorID, message *protocol.Message, reason error) {
	s.deadlettersCounter.Inc()
	s.logger.Warnf("message to actor %s dropped: %v", to, reason)
	s.publish(&Deadletter{
		To:      to,
		Message: message,
		Reason:  reason,
	})
}
