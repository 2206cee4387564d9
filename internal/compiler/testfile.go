package compiler

import (
	"fmt"
	"os"

	"github.com/KromDaniel/tinyre/internal/codegen"
	"github.com/KromDaniel/tinyre/internal/lexer"
	"github.com/dave/jennifer/jen"
)

// testInputs returns the configured inputs, or the pattern itself when none
// were given.
func (c *Compiler) testInputs() []string {
	if len(c.config.TestFileInputs) > 0 {
		return c.config.TestFileInputs
	}
	return []string{c.config.Pattern}
}

// RenderTestFile returns the formatted source of a test checking the
// generated matcher against the standard regexp package, plus a benchmark.
func (c *Compiler) RenderTestFile() ([]byte, error) {
	name := c.config.Name
	inputsVar := codegen.HelperName(name, codegen.TestInputsSuffix)
	compiled := fmt.Sprintf("Compiled%s", name)

	f := jen.NewFile(c.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by tinyre for pattern %q. DO NOT EDIT.", c.config.Pattern))

	inputs := make([]jen.Code, 0, len(c.testInputs()))
	for _, in := range c.testInputs() {
		inputs = append(inputs, jen.Lit(in))
	}
	f.Var().Id(inputsVar).Op("=").Index().String().Values(inputs...)
	f.Line()

	check := func(method string, arg jen.Code) jen.Code {
		return jen.If(
			jen.Id("got").Op(":=").Id(compiled).Dot(method).Call(arg),
			jen.Id("got").Op("!=").Id("want"),
		).Block(
			jen.Id("t").Dot("Errorf").Call(
				jen.Lit(method+"(%q) = %v, want %v"), jen.Id(codegen.InputName), jen.Id("got"), jen.Id("want"),
			),
		)
	}

	f.Func().Id(fmt.Sprintf("Test%sMatch", codegen.UpperFirst(name))).
		Params(jen.Id("t").Op("*").Qual("testing", "T")).
		Block(
			jen.Id("std").Op(":=").Qual("regexp", "MustCompile").Call(jen.Lit(lexer.ToGoSyntax(c.config.Pattern))),
			jen.For(jen.List(jen.Id("_"), jen.Id(codegen.InputName)).Op(":=").Range().Id(inputsVar)).Block(
				jen.Id("want").Op(":=").Id("std").Dot("MatchString").Call(jen.Id(codegen.InputName)),
				check("MatchString", jen.Id(codegen.InputName)),
				check("MatchBytes", jen.Index().Byte().Parens(jen.Id(codegen.InputName))),
			),
		)
	f.Line()

	f.Func().Id(fmt.Sprintf("Benchmark%sMatchString", codegen.UpperFirst(name))).
		Params(jen.Id("b").Op("*").Qual("testing", "B")).
		Block(
			jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
				jen.For(jen.List(jen.Id("_"), jen.Id(codegen.InputName)).Op(":=").Range().Id(inputsVar)).Block(
					jen.Id(compiled).Dot("MatchString").Call(jen.Id(codegen.InputName)),
				),
			),
		)

	return renderFile(f)
}

// generateTestFile writes the test file next to the output file.
func (c *Compiler) generateTestFile() error {
	src, err := c.RenderTestFile()
	if err != nil {
		return err
	}

	path := c.TestFilePath()
	c.logger.Log("Test file: %s (%d input(s))", path, len(c.testInputs()))
	return os.WriteFile(path, src, 0644)
}
