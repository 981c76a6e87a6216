package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/pose-utils/poseutils/testutils"
)

func TestMapOver(t *testing.T) {
	mapped, _ := mapOver([]int{1, 2}, func(x int) (int, error) { return x + 1, nil })
	test.That(t, mapped, test.ShouldResemble, []int{2, 3})

	_, err := mapOver([]string{"1", "x"}, func(s string) (r3.Vector, error) { return parseVector(s) })
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSamePath(t *testing.T) {
	equal, _ := samePath("/x", "/x")
	test.That(t, equal, test.ShouldBeTrue)
	equal, _ = samePath("/x", "x")
	test.That(t, equal, test.ShouldBeFalse)
}

func TestParseVector(t *testing.T) {
	v, err := parseVector("1, -2.5,3e2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, r3.Vector{X: 1, Y: -2.5, Z: 300})
	test.That(t, formatVector(v), test.ShouldEqual, "1 -2.5 300")

	_, err = parseVector("1,2")
	test.That(t, err, test.ShouldBeError, `expected x,y,z but got "1,2"`)
	_, err = parseVector("1,2,z")
	test.That(t, err.Error(), test.ShouldContainSubstring, `parsing "1,2,z"`)
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "page.html")
	err := createFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("<html></html>"))
		return err
	})
	test.That(t, err, test.ShouldBeNil)
	testutils.FileExistsAndNotEmpty(t, path)

	var buf bytes.Buffer
	printf(&buf, "%d poses", 3)
	warningf(&buf, "overwriting %q", "x")
	test.That(t, buf.String(), test.ShouldEqual, "3 poses\nWarning: overwriting \"x\"\n")
}
