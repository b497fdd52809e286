package processing

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/audio"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

// Binder pairs every planned segment with a generated visual and attaches
// the single voice-over track. Per-segment image failures drop that
// segment's visual and the run continues; a speech failure fails the run.
type Binder struct {
	Images   generation.ImageClient
	Speech   generation.SpeechClient
	Music    generation.MusicClient
	Enricher *PromptEnricher

	// ImageConcurrency bounds in-flight image requests. All requests are
	// still issued as one fan-out; the bound only limits overlap.
	ImageConcurrency int
}

// Bind runs the asset fan-out for a planned run and assembles the
// timeline. onProgress, if set, is called after each image completes or
// fails, with the running count of dropped segments.
func (b *Binder) Bind(ctx context.Context, segments []models.Segment, script, voice string, onProgress func(done, total, failed int)) (*models.TimelineState, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyScript
	}

	bound := b.ImageConcurrency
	if bound <= 0 {
		bound = 4
	}
	sem := make(chan struct{}, bound)

	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var visuals []*models.VisualAsset
	var failed, done int

	// Issue every image request before awaiting any. Failures are
	// recorded, not returned: returning an error here would cancel the
	// sibling requests.
	for _, seg := range segments {
		seg := seg
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			prompt := seg.Text
			if b.Enricher != nil {
				prompt = b.Enricher.Enrich(gctx, seg.Text)
			}

			res, err := b.Images.GenerateImage(gctx, prompt)
			if gctx.Err() != nil {
				// A cancelled run is abandoned, not bound short.
				return gctx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				failed++
				log.Printf("Dropping visual for segment %d: %v", seg.Index, err)
			} else {
				visuals = append(visuals, &models.VisualAsset{
					ID:           uuid.New().String(),
					SegmentIndex: seg.Index,
					Prompt:       prompt,
					SourceURI:    res.SourceURI,
					Image:        res.Bytes,
					StartTime:    seg.StartTime,
					Duration:     seg.Duration,
				})
			}
			if onProgress != nil {
				onProgress(done, len(segments), failed)
			}
			return nil
		})
	}

	// One speech request for the whole script. Its error propagates and
	// cancels the fan-out: no run can play without the voice track.
	var track *models.AudioTrack
	g.Go(func() error {
		res, err := b.Speech.Synthesize(gctx, script, voice)
		if err != nil {
			return err
		}
		wav, err := audio.WrapPCM(res.PCM, res.SampleRate)
		if err != nil {
			return fmt.Errorf("%w: %v", generation.ErrSpeechFailed, err)
		}
		mu.Lock()
		track = &models.AudioTrack{
			URI:        "voice-over.wav",
			SampleRate: res.SampleRate,
			Duration:   audio.PCMDuration(res.PCM, res.SampleRate),
			WAV:        wav,
		}
		mu.Unlock()
		return nil
	})

	// Background music stub. Best effort: no cue when it fails.
	var music *generation.MusicResult
	g.Go(func() error {
		res, err := b.Music.GenerateMusic(gctx, "storyboard")
		if err != nil {
			log.Printf("Skipping background music cue: %v", err)
			return nil
		}
		mu.Lock()
		music = res
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Completion order is whatever the network gave us; restore segment
	// order before anything downstream sees the list.
	sort.Slice(visuals, func(i, j int) bool {
		return visuals[i].StartTime < visuals[j].StartTime
	})

	timeline := &models.TimelineState{
		Visuals:   visuals,
		Audio:     track,
		Subtitles: DeriveSubtitles(segments, visuals),
	}
	if music != nil {
		timeline.Cues = append(timeline.Cues, &models.SoundCue{
			ID:          uuid.New().String(),
			SourceURI:   music.SourceURI,
			TriggerTime: 0,
		})
	}

	if failed > 0 {
		log.Printf("Run bound with %d of %d visuals (%d dropped)", len(visuals), len(segments), failed)
	}

	return timeline, nil
}
