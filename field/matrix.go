package field

import "errors"

var (
	// ErrDimensionMismatch is returned when matrix shapes do not line up
	// for the requested operation.
	ErrDimensionMismatch = errors.New("field: matrix dimension mismatch")

	// ErrSingular is returned when a matrix cannot be inverted.
	ErrSingular = errors.New("field: matrix is singular")
)

// Matrix is a dense row-major matrix over a binary field. Element values
// must stay within the range of whichever Field the matrix is used with.
type Matrix struct {
	rows, cols int
	data       []uint32
}

// NewMatrix returns a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]uint32, rows*cols),
	}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Vandermonde returns the rows x cols matrix V with V[i][j] = i^j in the
// field. The row indices serve as the evaluation points, so rows must not
// exceed f.Order(); since the points are distinct, every square submatrix
// formed from distinct rows is invertible.
func Vandermonde(f Field, rows, cols int) *Matrix {
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[i*cols+j] = f.Pow(uint32(i), j)
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) uint32 {
	return m.data[r*m.cols+c]
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v uint32) {
	m.data[r*m.cols+c] = v
}

// Row returns a view of row r. The slice aliases the matrix storage.
func (m *Matrix) Row(r int) []uint32 {
	return m.data[r*m.cols : (r+1)*m.cols]
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Equal reports whether two matrices have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Mul returns the matrix product m * other over the field, or
// ErrDimensionMismatch when m.Cols() != other.Rows().
func (m *Matrix) Mul(f Field, other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, ErrDimensionMismatch
	}
	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			var sum uint32
			for k := 0; k < m.cols; k++ {
				sum = f.Add(sum, f.Mul(m.At(i, k), other.At(k, j)))
			}
			out.Set(i, j, sum)
		}
	}
	return out, nil
}

// SubMatrix returns the matrix formed by the given rows, in the given
// order, preserving all columns.
func (m *Matrix) SubMatrix(rows []int) *Matrix {
	out := NewMatrix(len(rows), m.cols)
	for i, r := range rows {
		copy(out.Row(i), m.Row(r))
	}
	return out
}

// Invert returns the inverse of a square matrix computed by Gauss-Jordan
// elimination over the field. It returns ErrDimensionMismatch for a
// non-square matrix and ErrSingular when some pivot column has no non-zero
// entry to interchange into place.
func (m *Matrix) Invert(f Field) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrDimensionMismatch
	}
	n := m.rows
	work := m.Clone()
	inv := Identity(n)

	for i := 0; i < n; i++ {
		// Find a row with a non-zero entry in column i and swap it up.
		pivot := -1
		for r := i; r < n; r++ {
			if work.At(r, i) != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return nil, ErrSingular
		}
		if pivot != i {
			swapRows(work, i, pivot)
			swapRows(inv, i, pivot)
		}

		// Scale the pivot row so the pivot becomes 1.
		scale, err := f.Inv(work.At(i, i))
		if err != nil {
			return nil, err
		}
		if scale != 1 {
			mulRow(f, work.Row(i), scale)
			mulRow(f, inv.Row(i), scale)
		}

		// Eliminate column i from every other row.
		for r := 0; r < n; r++ {
			if r == i {
				continue
			}
			factor := work.At(r, i)
			if factor == 0 {
				continue
			}
			subScaledRow(f, work.Row(r), work.Row(i), factor)
			subScaledRow(f, inv.Row(r), inv.Row(i), factor)
		}
	}
	return inv, nil
}

func swapRows(m *Matrix, a, b int) {
	ra, rb := m.Row(a), m.Row(b)
	for i := range ra {
		ra[i], rb[i] = rb[i], ra[i]
	}
}

func mulRow(f Field, row []uint32, c uint32) {
	for i := range row {
		row[i] = f.Mul(row[i], c)
	}
}

// subScaledRow computes dst -= c * src, which in a binary field is the
// same as dst += c * src.
func subScaledRow(f Field, dst, src []uint32, c uint32) {
	for i := range dst {
		dst[i] = f.Add(dst[i], f.Mul(c, src[i]))
	}
}
