package compiler

import (
	"github.com/p-sawicki/cplc/pkg/ir"
)

// complexRe returns the address of the real component of the record at ptr.
func (c *Compiler) complexRe(ptr ir.Value) ir.Value {
	return c.builder.CreateGEP(ir.Complex, ptr, 0)
}

// complexIm returns the address of the imaginary component.
func (c *Compiler) complexIm(ptr ir.Value) ir.Value {
	return c.builder.CreateGEP(ir.Complex, ptr, 1)
}

// complexValue materializes a complex value from its components through a
// frame allocation.
func (c *Compiler) complexValue(re, im ir.Value) ir.Value {
	alloc := c.builder.CreateAlloca(ir.Complex)
	c.builder.CreateStore(re, c.complexRe(alloc))
	c.builder.CreateStore(im, c.complexIm(alloc))
	return c.builder.CreateLoad(ir.Complex, alloc)
}

// complexComponents spills a complex value and loads its two components.
func (c *Compiler) complexComponents(val ir.Value) (re, im ir.Value) {
	alloc := c.builder.CreateAlloca(ir.Complex)
	c.builder.CreateStore(val, alloc)
	return c.builder.CreateLoad(ir.Double, c.complexRe(alloc)),
		c.builder.CreateLoad(ir.Double, c.complexIm(alloc))
}

// complexMul emits (re1+im1·i)(re2+im2·i) = (re1·re2−im1·im2) +
// (re1·im2+im1·re2)·i and returns the two components.
func (c *Compiler) complexMul(re1, im1, re2, im2 ir.Value) (re, im ir.Value) {
	reMul := c.builder.CreateFMul(re1, re2)
	imMul := c.builder.CreateFMul(im1, im2)
	cross1 := c.builder.CreateFMul(re1, im2)
	cross2 := c.builder.CreateFMul(im1, re2)
	return c.builder.CreateFSub(reMul, imMul), c.builder.CreateFAdd(cross1, cross2)
}

// complexDiv divides by multiplying the numerator with the conjugate of
// the denominator and dividing both components by |denominator|².
func (c *Compiler) complexDiv(re1, im1, re2, im2 ir.Value) ir.Value {
	conjugateIm := c.builder.CreateFMul(im2, minusOneDouble)
	topRe, topIm := c.complexMul(re1, im1, re2, conjugateIm)
	bottom := c.builder.CreateFAdd(
		c.builder.CreateFMul(re2, re2), c.builder.CreateFMul(im2, im2))

	return c.complexValue(
		c.builder.CreateFDiv(topRe, bottom), c.builder.CreateFDiv(topIm, bottom))
}
