package snvclust

// Allele is a single allele index at a biallelic site: 0 for the reference
// allele, 1 for the alternate. AlleleMissing marks an uncalled allele.
type Allele int8

// AlleleMissing is the missing-allele sentinel. Any allele index outside
// {0, 1} is treated the same way by GenotypeCode.
const AlleleMissing Allele = -1

// Call is one diploid genotype call. Haploid calls are padded with a
// reference second allele before they reach this package (see internal/vcf).
type Call struct {
	A, B Allele
}

// MissingCall is the fully uncalled genotype.
var MissingCall = Call{AlleleMissing, AlleleMissing}

// CodeMissing is the missing sentinel for genotype and difference codes.
// It is distinct from every valid code (0, 1, 2) and from every valid
// difference value, so missing data can never be mistaken for a real
// observation.
const CodeMissing int8 = -1

// GenotypeCode maps a diploid biallelic call to its alternate-allele count:
//
//	(0,0) → 0    homozygous reference
//	(0,1) → 1    heterozygous
//	(1,0) → 1    heterozygous
//	(1,1) → 2    homozygous alternate
//
// Every other shape (either allele missing, or an allele index outside the
// biallelic set) maps to CodeMissing.
func GenotypeCode(c Call) int8 {
	switch {
	case c.A == 0 && c.B == 0:
		return 0
	case c.A == 0 && c.B == 1:
		return 1
	case c.A == 1 && c.B == 0:
		return 1
	case c.A == 1 && c.B == 1:
		return 2
	default:
		return CodeMissing
	}
}

// DifferenceCode returns |a-b| for two genotype codes, or CodeMissing when
// either side is missing. Valid results are in {0, 1, 2}.
func DifferenceCode(a, b int8) int8 {
	if a == CodeMissing || b == CodeMissing {
		return CodeMissing
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}
