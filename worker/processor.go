// Package worker executes generation runs off the request path. There is
// no durable queue behind it: a run belongs to exactly one live session,
// so the executor is a goroutine per run with bounded provider fan-out
// inside the binder.
package worker

import (
	"context"
	"log"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/processing"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/session"
)

// Processor drives the storyboard pipeline for one run at a time per
// session: plan segments, fan out assets, bind, commit.
type Processor struct {
	Binder *processing.Binder
	Images generation.ImageClient
}

// NewProcessor wires the pipeline dependencies.
func NewProcessor(binder *processing.Binder, images generation.ImageClient) *Processor {
	return &Processor{Binder: binder, Images: images}
}

// StartRun begins a generation run for the session and returns its id
// immediately. A previous in-flight run is cancelled by the epoch switch;
// its late completions are discarded inside the session.
func (p *Processor) StartRun(sess *session.Session, script, voice string) string {
	run, ctx, epoch := sess.BeginRun(script, voice)
	log.Printf("Session %s: starting run %s (epoch %d)", sess.ID, run.ID, epoch)

	go p.execute(ctx, sess, epoch, script, voice)
	return run.ID
}

func (p *Processor) execute(ctx context.Context, sess *session.Session, epoch int64, script, voice string) {
	segments, err := processing.PlanSegments(script)
	if err != nil {
		sess.FailRun(epoch, err)
		return
	}
	sess.SetSegments(epoch, segments)
	log.Printf("Session %s: planned %d segments", sess.ID, len(segments))

	onProgress := func(done, total, failed int) {
		sess.UpdateProgress(epoch, done, total, failed)
	}

	timeline, err := p.Binder.Bind(ctx, segments, script, voice, onProgress)
	if err != nil {
		if ctx.Err() != nil {
			log.Printf("Session %s: run epoch %d cancelled", sess.ID, epoch)
			return
		}
		sess.FailRun(epoch, err)
		return
	}

	failed := len(segments) - len(timeline.Visuals)
	sess.UpdateProgress(epoch, len(segments), len(segments), failed)
	sess.CommitTimeline(epoch, timeline, p.Images)
	log.Printf("Session %s: run epoch %d ready (%d visuals, %d dropped)", sess.ID, epoch, len(timeline.Visuals), failed)
}
