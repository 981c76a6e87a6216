package openpose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	putils "github.com/pose-utils/poseutils/utils"
)

var labelFont *truetype.Font

func init() {
	var err error
	labelFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// DrawOptions controls how a skeleton is drawn.
type DrawOptions struct {
	// Bones to draw. Defaults to BonesOfInterest.
	Bones []Bone
	// ShowLegend adds a legend entry, or a text label on images, per joint.
	ShowLegend bool
	// BoneWidth is the stroke width of bones, in points on plots and pixels on images. Defaults to 1.
	BoneWidth float64
	// MinConfidence hides bones with an endpoint detected below this confidence.
	// OpenPose reports 0 for joints it did not find.
	MinConfidence float64
	Title         string
}

func (o DrawOptions) bones() []Bone {
	if len(o.Bones) == 0 {
		return BonesOfInterest
	}
	return o.Bones
}

func (o DrawOptions) boneWidth() float64 {
	if o.BoneWidth <= 0 {
		return 1
	}
	return o.BoneWidth
}

// BoneColor returns a stable color for the i-th of n bones, spread around the hue circle.
func BoneColor(i, n int) color.Color {
	if n <= 0 {
		n = 1
	}
	return colorful.Hsv(float64(i)*360/float64(n), 0.85, 0.9).Clamped()
}

// Skeleton is the part of a pose that gets drawn.
type Skeleton struct {
	// Segments holds the two endpoints of each visible bone.
	Segments [][2]JointDescriptor
	// Joints are the endpoints of the visible bones, each listed once.
	Joints []JointDescriptor
}

// BuildSkeleton resolves the endpoints of the bones selected by opts. A bone whose joint is
// missing fails; a bone with an endpoint below the confidence threshold is skipped.
func BuildSkeleton(joints []JointDescriptor, opts DrawOptions) (Skeleton, error) {
	lookup := Lookup(joints)
	var sk Skeleton
	seen := map[Joint]bool{}
	for _, bone := range opts.bones() {
		from, ok := lookup[bone.From]
		if !ok {
			return Skeleton{}, errors.Errorf("bone %v: missing joint %v", bone, bone.From)
		}
		to, ok := lookup[bone.To]
		if !ok {
			return Skeleton{}, errors.Errorf("bone %v: missing joint %v", bone, bone.To)
		}
		if from.Confidence < opts.MinConfidence || to.Confidence < opts.MinConfidence {
			continue
		}
		sk.Segments = append(sk.Segments, [2]JointDescriptor{from, to})
		for _, j := range []JointDescriptor{from, to} {
			if !seen[j.Joint] {
				seen[j.Joint] = true
				sk.Joints = append(sk.Joints, j)
			}
		}
	}
	return sk, nil
}

// DrawPose plots the skeleton's bones as lines and its joints as points. The Y axis is
// inverted so the skeleton appears as it does in the image.
func DrawPose(joints []JointDescriptor, opts DrawOptions) (*plot.Plot, error) {
	sk, err := BuildSkeleton(joints, opts)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	for i, seg := range sk.Segments {
		line, err := plotter.NewLine(plotter.XYs{
			{X: seg[0].X, Y: seg[0].Y},
			{X: seg[1].X, Y: seg[1].Y},
		})
		if err != nil {
			return nil, err
		}
		line.Color = BoneColor(i, len(sk.Segments))
		line.Width = vg.Points(opts.boneWidth())
		p.Add(line)
	}

	for i, joint := range sk.Joints {
		scatter, err := plotter.NewScatter(plotter.XYs{{X: joint.X, Y: joint.Y}})
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = BoneColor(i, len(sk.Joints))
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		if opts.ShowLegend {
			p.Legend.Add(joint.Joint.String(), scatter)
		}
	}
	if opts.ShowLegend {
		p.Legend.Top = true
		p.Legend.Left = false
	}
	return p, nil
}

// DrawOnImage returns a copy of img with the skeleton drawn over it.
func DrawOnImage(img image.Image, joints []JointDescriptor, opts DrawOptions) (image.Image, error) {
	sk, err := BuildSkeleton(joints, opts)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContextForImage(img)

	dc.SetLineWidth(opts.boneWidth())
	for i, seg := range sk.Segments {
		dc.SetColor(BoneColor(i, len(sk.Segments)))
		dc.DrawLine(seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
		dc.Stroke()
	}

	radius := 2 + opts.boneWidth()
	dc.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{Size: 10}))
	for _, joint := range sk.Joints {
		dc.SetRGBA(1, 1, 1, 0.9)
		dc.DrawCircle(joint.X, joint.Y, radius)
		dc.Fill()
		if opts.ShowLegend {
			dc.SetColor(color.White)
			dc.DrawStringAnchored(joint.Joint.String(), joint.X+radius+2, joint.Y, 0, 0.5)
		}
	}
	return dc.Image(), nil
}

// SaveImage draws the skeleton over img and writes it as a PNG.
func SaveImage(path string, img image.Image, joints []JointDescriptor, opts DrawOptions) error {
	out, err := DrawOnImage(img, joints, opts)
	if err != nil {
		return err
	}
	if err := putils.EnsureParentDir(path); err != nil {
		return err
	}
	return errors.Wrapf(gg.SavePNG(path, out), "saving %q", path)
}

// LoadImage reads a frame to draw on, applying any EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	return img, errors.Wrapf(err, "loading %q", path)
}
