package game

import (
	"fmt"

	"github.com/google/uuid"
)

// idNamespace seeds the name-based IDs of containers and checkers so that
// importing the same records twice yields the same IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/yourusername/bgrules"))

func newID() string {
	return uuid.NewString()
}

func pointID(c Coords) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("point/%d", c.Clockwise))).String()
}

func barID(d Direction) string {
	return uuid.NewSHA1(idNamespace, []byte("bar/"+d.String())).String()
}

func offID(c Color) string {
	return uuid.NewSHA1(idNamespace, []byte("off/"+c.String())).String()
}

func checkerID(containerID string, c Color, n int) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("checker/%s/%s/%d", containerID, c, n))).String()
}
