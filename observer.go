// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"code.hybscloud.com/atomix"
	"github.com/sirupsen/logrus"
)

// WaitSite identifies which kernel wait loop produced an event.
type WaitSite uint8

const (
	// SiteRead is the reader's wait for data.
	SiteRead WaitSite = iota
	// SiteWrite is the writer's wait for space or for the rendezvous
	// to complete.
	SiteWrite
	// SiteExtendedRead is the reader's wait inside StartRead.
	SiteExtendedRead

	numWaitSites
)

// String returns the site name.
func (s WaitSite) String() string {
	switch s {
	case SiteRead:
		return "read"
	case SiteWrite:
		return "write"
	case SiteExtendedRead:
		return "extended-read"
	}
	return "unknown"
}

// Observer receives kernel events from the channels it is configured on
// via [WithObserver]. Methods are called with the channel monitor held
// and must not call back into the channel.
//
// A nil Observer is valid and records nothing.
type Observer interface {
	// SpuriousWakeup is called when a wait loop wakes with its
	// predicate still unsatisfied and re-parks.
	SpuriousWakeup(serial Serial, site WaitSite)

	// Poisoned is called when a channel's poison strength increases.
	Poisoned(serial Serial, strength int)
}

// CountingObserver aggregates event counts. It is safe for use by any
// number of channels concurrently. The zero value is ready to use.
type CountingObserver struct {
	spurious [numWaitSites]atomix.Uint32
	poisons  atomix.Uint32
}

// SpuriousWakeup implements [Observer].
func (o *CountingObserver) SpuriousWakeup(_ Serial, site WaitSite) {
	o.spurious[site].Add(1)
}

// Poisoned implements [Observer].
func (o *CountingObserver) Poisoned(Serial, int) {
	o.poisons.Add(1)
}

// Spurious returns the number of spurious wakeups recorded at site.
func (o *CountingObserver) Spurious(site WaitSite) uint32 {
	return o.spurious[site].Add(0)
}

// Poisons returns the number of poison injections recorded.
func (o *CountingObserver) Poisons() uint32 {
	return o.poisons.Add(0)
}

// logObserver forwards kernel events to a structured logger.
type logObserver struct {
	log logrus.FieldLogger
}

// NewLogObserver returns an [Observer] that logs spurious wakeups at
// debug level and poison injections at info level.
func NewLogObserver(log logrus.FieldLogger) Observer {
	return &logObserver{log: log}
}

// SpuriousWakeup implements [Observer].
func (o *logObserver) SpuriousWakeup(serial Serial, site WaitSite) {
	o.log.WithFields(logrus.Fields{
		"channel": serial,
		"site":    site.String(),
	}).Debug("spurious wakeup")
}

// Poisoned implements [Observer].
func (o *logObserver) Poisoned(serial Serial, strength int) {
	o.log.WithFields(logrus.Fields{
		"channel":  serial,
		"strength": strength,
	}).Info("channel poisoned")
}
