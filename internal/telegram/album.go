package telegram

import (
	"errors"
	"sync"

	"github.com/Vovarama1992/file_converter/internal/ports"
)

// лимиты одной очереди чата
const (
	maxAlbumImages = 50
	maxAlbumBytes  = 100 << 20
)

var errAlbumFull = errors.New("album is full")

// albums копит картинки чата для сборки PDF; порядок = порядок прихода
type albums struct {
	mu        sync.Mutex
	byChat    map[int64][]ports.InputArtifact
	size      map[int64]int64
	maxImages int
	maxBytes  int64
}

func newAlbums() *albums {
	return newAlbumsWithLimits(maxAlbumImages, maxAlbumBytes)
}

func newAlbumsWithLimits(maxImages int, maxBytes int64) *albums {
	return &albums{
		byChat:    make(map[int64][]ports.InputArtifact),
		size:      make(map[int64]int64),
		maxImages: maxImages,
		maxBytes:  maxBytes,
	}
}

// Add возвращает новую длину очереди; переполненная очередь не меняется
func (a *albums) Add(chatID int64, in ports.InputArtifact) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.byChat[chatID])
	if n >= a.maxImages || a.size[chatID]+int64(len(in.Bytes)) > a.maxBytes {
		return n, errAlbumFull
	}
	a.byChat[chatID] = append(a.byChat[chatID], in)
	a.size[chatID] += int64(len(in.Bytes))
	return n + 1, nil
}

// Take забирает накопленное и очищает очередь чата
func (a *albums) Take(chatID int64) []ports.InputArtifact {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.byChat[chatID]
	delete(a.byChat, chatID)
	delete(a.size, chatID)
	return out
}

func (a *albums) Len(chatID int64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.byChat[chatID])
}
