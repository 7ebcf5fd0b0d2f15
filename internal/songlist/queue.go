package songlist

// QueueLength is what is left to play after the playing record.
type QueueLength struct {
	Count   int
	Seconds int
}

type queueCache struct {
	valid  bool
	owner  int // server id of the playing track
	size   int // filtered view size at computation time
	result QueueLength
}

func (c *queueCache) invalidate() {
	*c = queueCache{}
}

// QueueLength sums the records of the filtered view positioned after the
// playing track.
//
// When nothing is playing, or the playing track has no server id or
// position, the whole list counts. The result is cached for as long as the
// same track plays and the filtered view keeps its size; Move and Clear drop
// the cache.
func (s *Songlist) QueueLength() QueueLength {
	cur := s.playing()
	if cur == nil || !cur.ID.Valid || !cur.Pos.Valid {
		return QueueLength{Count: len(s.view), Seconds: s.duration}
	}

	if s.queue.valid && s.queue.owner == cur.ID.Value && s.queue.size == len(s.view) {
		return s.queue.result
	}

	var q QueueLength
	for i := cur.Pos.Index + 1; i < len(s.view); i++ {
		e := s.at(i)
		if e == nil {
			continue
		}
		q.Count++
		if d := e.track.Duration; d.Known {
			q.Seconds += d.Seconds
		}
	}

	s.queue = queueCache{
		valid:  true,
		owner:  cur.ID.Value,
		size:   len(s.view),
		result: q,
	}
	return q
}
