package generation

import (
	"context"
	"fmt"
	"time"
)

// StubMusicClient simulates the background-music service: a fixed delay
// followed by a placeholder reference. The real provider slots in behind
// the same interface.
type StubMusicClient struct {
	Delay time.Duration
}

// NewStubMusicClient uses a short default delay.
func NewStubMusicClient() *StubMusicClient {
	return &StubMusicClient{Delay: 300 * time.Millisecond}
}

func (c *StubMusicClient) GenerateMusic(ctx context.Context, mood string) (*MusicResult, error) {
	select {
	case <-time.After(c.Delay):
	case <-ctx.Done():
		return nil, wrapErr(ErrMusicFailed, ctx.Err())
	}
	return &MusicResult{
		SourceURI: fmt.Sprintf("stub://music/%s", mood),
	}, nil
}
