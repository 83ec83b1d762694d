/*
 * symop.go, part of goxtal.
 *
 * Copyright 2024 The goxtal developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package xtal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//A space group operation is compressed using a ternary numeral system for
//the rotation and a duodecimal system for the translation. This works
//because each element of a crystallographic rotation matrix is one of
//{-1,0,1}, and each translation component is one of {0,2,3,4,6,8,9,10}
//divided by 12. 3^9 * 12^3 = 34012224 values therefore cover every
//operation. Octal would do for the translation, but duodecimal is more
//convenient.
const (
	//IdentityCode is the packed integer form of the identity operation x,y,z.
	IdentityCode = 16484
	rotRange     = 19683 //3^9
	maxSymopCode = rotRange * 12 * 12 * 12
)

//The translation numerators that occur in the 230 space groups,
//as twelfths.
var validTwelfths = [12]bool{
	0: true, 2: true, 3: true, 4: true,
	6: true, 8: true, 9: true, 10: true,
}

//SymmetryOperation is an affine transform in fractional coordinates:
//a 3x3 rotation with entries in {-1,0,1} plus a translation with each
//component in [0,1), stored exactly as twelfths. Values are immutable
//after construction; equality, ordering and hashing of operations is
//defined solely by IntegerCode.
type SymmetryOperation struct {
	rot   [3][3]int
	trans [3]int //numerators over 12, each in [0,12)
	code  int
	str   string
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

//twelfths converts a float translation component to its exact duodecimal
//numerator, reduced mod 1. Components that are not crystallographically
//valid twelfths are an error, never truncated.
func twelfths(t float64) (int, error) {
	scaled := t * 12
	n := math.Round(scaled)
	if math.Abs(scaled-n) > 0.05 {
		return 0, fmt.Errorf("translation component %g is not a multiple of 1/12", t)
	}
	v := mod12(int(n))
	if !validTwelfths[v] {
		return 0, fmt.Errorf("translation numerator %d/12 is not crystallographically valid", v)
	}
	return v, nil
}

func encodeSymmInt(rot [3][3]int, trans [3]int) int {
	r := 0
	shift := 1
	for i := 2; i >= 0; i-- {
		for j := 2; j >= 0; j-- {
			r += (rot[i][j] + 1) * shift
			shift *= 3
		}
	}
	t := 0
	shift = 1
	for i := 2; i >= 0; i-- {
		t += trans[i] * shift
		shift *= 12
	}
	return r + t*rotRange
}

func decodeSymmInt(code int) (rot [3][3]int, trans [3]int) {
	r := code % rotRange
	shift := 6561 //3^8
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot[i][j] = (r%(shift*3))/shift - 1
			shift /= 3
		}
	}
	t := code / rotRange
	shift = 144
	for i := 0; i < 3; i++ {
		trans[i] = (t % (shift * 12)) / shift
		shift /= 12
	}
	return rot, trans
}

//encodeSymmStr renders the operation in the "1/2+x,..." algebraic form
//used by CIF and SHELX files. The translation, if nonzero, precedes the
//variable terms of each row.
func encodeSymmStr(rot [3][3]int, trans [3]int) string {
	symbols := [3]string{"x", "y", "z"}
	rows := make([]string, 3)
	for i := 0; i < 3; i++ {
		var b strings.Builder
		if trans[i] != 0 {
			num, den := trans[i], 12
			for d := 2; d <= num; d++ {
				for num%d == 0 && den%d == 0 {
					num /= d
					den /= d
				}
			}
			fmt.Fprintf(&b, "%d/%d", num, den)
		}
		for j := 0; j < 3; j++ {
			switch {
			case rot[i][j] > 0:
				b.WriteString("+" + symbols[j])
			case rot[i][j] < 0:
				b.WriteString("-" + symbols[j])
			}
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, ",")
}

func newSymop(rot [3][3]int, trans [3]int) *SymmetryOperation {
	s := &SymmetryOperation{rot: rot, trans: trans}
	s.code = encodeSymmInt(rot, trans)
	s.str = encodeSymmStr(rot, trans)
	return s
}

//NewSymmetryOperation builds an operation from an explicit rotation matrix
//and translation vector. The translation is reduced mod 1. Rotation
//entries outside {-1,0,1} or translation components outside the duodecimal
//set {0,2,3,4,6,8,9,10}/12 are an immediate error.
func NewSymmetryOperation(rotation [3][3]int, translation [3]float64) (*SymmetryOperation, error) {
	var tw [3]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if rotation[i][j] < -1 || rotation[i][j] > 1 {
				return nil, cError("NewSymmetryOperation", "rotation entry (%d,%d)=%d outside {-1,0,1}", i, j, rotation[i][j])
			}
		}
		v, err := twelfths(translation[i])
		if err != nil {
			return nil, errDecorate(err, "NewSymmetryOperation")
		}
		tw[i] = v
	}
	return newSymop(rotation, tw), nil
}

//SymmetryOperationFromCode decodes a packed integer produced by
//IntegerCode back into the operation it represents.
func SymmetryOperationFromCode(code int) (*SymmetryOperation, error) {
	if code < 0 || code >= maxSymopCode {
		return nil, cError("SymmetryOperationFromCode", "code %d outside [0, 3^9*12^3)", code)
	}
	rot, trans := decodeSymmInt(code)
	for i, v := range trans {
		if !validTwelfths[v] {
			return nil, cError("SymmetryOperationFromCode", "code %d decodes to invalid translation numerator %d/12 in component %d", code, v, i)
		}
	}
	return newSymop(rot, trans), nil
}

var symmTokenRe = regexp.MustCompile(`.*?([+-]*[xyz0-9./]+)`)

//ParseSymmetryOperation decodes an algebraic coordinate triplet such as
//"1/2 + x, y, -z -0.25". Each row may contain each of x, y, z at most
//once with coefficient +-1, plus any number of numeric terms, written as
//decimals or p/q fractions, which are summed. The resulting translation
//is reduced mod 1. Unrecognized tokens are an error.
func ParseSymmetryOperation(s string) (*SymmetryOperation, error) {
	var rot [3][3]int
	var trans [3]float64
	rows := strings.Split(strings.ReplaceAll(strings.ToLower(s), " ", ""), ",")
	if len(rows) != 3 {
		return nil, cError("ParseSymmetryOperation", "%q: expected 3 comma-separated rows, got %d", s, len(rows))
	}
	for i, row := range rows {
		matches := symmTokenRe.FindAllStringSubmatch(row, -1)
		if len(matches) == 0 {
			return nil, cError("ParseSymmetryOperation", "%q: row %d has no recognizable terms", s, i)
		}
		parsed := 0
		for _, m := range matches {
			tok := m[1]
			parsed += len(m[0])
			switch {
			case strings.Contains(tok, "x"):
				rot[i][0] = varCoefficient(tok, "x")
			case strings.Contains(tok, "y"):
				rot[i][1] = varCoefficient(tok, "y")
			case strings.Contains(tok, "z"):
				rot[i][2] = varCoefficient(tok, "z")
			case strings.Contains(tok, "/"):
				parts := strings.SplitN(tok, "/", 2)
				num, err1 := strconv.ParseFloat(parts[0], 64)
				den, err2 := strconv.ParseFloat(parts[1], 64)
				if err1 != nil || err2 != nil || den == 0 {
					return nil, cError("ParseSymmetryOperation", "%q: bad fraction %q", s, tok)
				}
				trans[i] += num / den
			default:
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, cError("ParseSymmetryOperation", "%q: unrecognized token %q", s, tok)
				}
				trans[i] += v
			}
		}
		if parsed != len(row) {
			return nil, cError("ParseSymmetryOperation", "%q: row %d contains unparseable text", s, i)
		}
	}
	op, err := NewSymmetryOperation(rot, trans)
	if err != nil {
		return nil, errDecorate(err, "ParseSymmetryOperation")
	}
	return op, nil
}

func varCoefficient(token, symbol string) int {
	if strings.Contains(token, "-"+symbol) {
		return -1
	}
	return 1
}

//mustParseSymop is for the embedded reference table and tests, where a
//parse failure is a programming error.
func mustParseSymop(s string) *SymmetryOperation {
	op, err := ParseSymmetryOperation(s)
	if err != nil {
		panic(err)
	}
	return op
}

//Identity returns the operation x,y,z.
func Identity() *SymmetryOperation {
	op, _ := SymmetryOperationFromCode(IdentityCode)
	return op
}

//IsIdentity reports whether this is the operation x,y,z.
func (S *SymmetryOperation) IsIdentity() bool {
	return S.code == IdentityCode
}

//IntegerCode returns the packed integer form of the operation. Two
//operations are identical iff their codes are equal.
func (S *SymmetryOperation) IntegerCode() int {
	return S.code
}

func (S *SymmetryOperation) String() string {
	return S.str
}

//Rotation returns a copy of the rotation matrix.
func (S *SymmetryOperation) Rotation() [3][3]int {
	return S.rot
}

//Translation returns the translation vector, each component in [0,1).
func (S *SymmetryOperation) Translation() [3]float64 {
	return [3]float64{
		float64(S.trans[0]) / 12,
		float64(S.trans[1]) / 12,
		float64(S.trans[2]) / 12,
	}
}

//SeitzMatrix returns the augmented 4x4 matrix form of the operation.
func (S *SymmetryOperation) SeitzMatrix() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, float64(S.rot[i][j]))
		}
		m.Set(i, 3, float64(S.trans[i])/12)
	}
	m.Set(3, 3, 1)
	return m
}

//Inverted negates both the rotation and the translation. This is the
//operation generated by composing with an inversion center at the origin;
//it is how centrosymmetric expansion adds the -x,-y,-z images. It is not
//a general matrix inverse.
func (S *SymmetryOperation) Inverted() *SymmetryOperation {
	var rot [3][3]int
	var trans [3]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot[i][j] = -S.rot[i][j]
		}
		trans[i] = mod12(-S.trans[i])
	}
	return newSymop(rot, trans)
}

//addTwelfths returns a copy of the operation with the given duodecimal
//numerators added to the translation, mod 1. Used to generate the
//lattice-centering images of an operation.
func (S *SymmetryOperation) addTwelfths(t [3]int) *SymmetryOperation {
	var trans [3]int
	for i := 0; i < 3; i++ {
		trans[i] = mod12(S.trans[i] + t[i])
	}
	return newSymop(S.rot, trans)
}

//Add returns a new operation whose translation is shifted by t, mod 1.
func (S *SymmetryOperation) Add(t [3]float64) (*SymmetryOperation, error) {
	var tw [3]int
	for i, v := range t {
		n, err := twelfths(v)
		if err != nil {
			return nil, errDecorate(err, "SymmetryOperation.Add")
		}
		tw[i] = n
	}
	return S.addTwelfths(tw), nil
}

//Sub returns a new operation whose translation is shifted by -t, mod 1.
func (S *SymmetryOperation) Sub(t [3]float64) (*SymmetryOperation, error) {
	return S.Add([3]float64{-t[0], -t[1], -t[2]})
}

//Apply transforms the given (N,3) fractional positions, returning
//rotation*p + translation for each row p. No wrapping into [0,1) is
//performed; callers wrap if they need cell-interior coordinates.
func (S *SymmetryOperation) Apply(positions *mat.Dense) *mat.Dense {
	r, c := positions.Dims()
	if c != 3 {
		panic("goxtal: SymmetryOperation.Apply needs an (N,3) position matrix")
	}
	t := S.Translation()
	out := mat.NewDense(r, 3, nil)
	for i := 0; i < r; i++ {
		for k := 0; k < 3; k++ {
			v := t[k]
			for j := 0; j < 3; j++ {
				if S.rot[k][j] != 0 {
					v += float64(S.rot[k][j]) * positions.At(i, j)
				}
			}
			out.Set(i, k, v)
		}
	}
	return out
}
