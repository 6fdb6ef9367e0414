package types

import "fmt"

// ValidateStream checks the ordering contract of a chunk sequence: indices
// run 0..n-1 in order and only the last chunk is final. An empty stream is valid.
func ValidateStream(chunks []ChatChunk) error {
	for i, c := range chunks {
		if c.Index != i {
			return fmt.Errorf("chunk %d: index %d out of sequence", i, c.Index)
		}
		last := i == len(chunks)-1
		if c.IsFinal && !last {
			return fmt.Errorf("chunk %d: is_final set before end of stream", i)
		}
		if last && !c.IsFinal {
			return fmt.Errorf("chunk %d: last chunk not marked final", i)
		}
	}
	return nil
}

// JoinTokens concatenates chunk tokens in the order given.
func JoinTokens(chunks []ChatChunk) string {
	n := 0
	for _, c := range chunks {
		n += len(c.Token)
	}
	b := make([]byte, 0, n)
	for _, c := range chunks {
		b = append(b, c.Token...)
	}
	return string(b)
}
