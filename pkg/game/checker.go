package game

import "fmt"

// Checker is a single playing piece. ContainerID is filled from the board's
// container membership when the checker is read and is never stored on its own.
type Checker struct {
	ID          string
	Color       Color
	ContainerID string
}

// NewCheckersForContainer builds count fresh checkers of color c resting in
// the given container. Checker IDs are derived from the container, color and
// index, so identical inputs give identical checkers.
func NewCheckersForContainer(containerID string, c Color, count int) []Checker {
	checkers := make([]Checker, count)
	for i := range checkers {
		checkers[i] = Checker{
			ID:          checkerID(containerID, c, i),
			Color:       c,
			ContainerID: containerID,
		}
	}
	return checkers
}

// Checker looks up a checker by ID.
func (b *Board) Checker(id string) (Checker, error) {
	containerID, ok := b.location[id]
	if !ok {
		return Checker{}, fmt.Errorf("%w: %s", ErrCheckerNotFound, id)
	}
	return Checker{ID: id, Color: b.colors[id], ContainerID: containerID}, nil
}

// Checkers returns every checker on the board, points first (clockwise
// order), then bars, then offs.
func (b *Board) Checkers() []Checker {
	checkers := make([]Checker, 0, 2*NumCheckers)
	for _, id := range b.containerOrder() {
		for _, cid := range b.containers[id].Checkers {
			checkers = append(checkers, Checker{ID: cid, Color: b.colors[cid], ContainerID: id})
		}
	}
	return checkers
}
