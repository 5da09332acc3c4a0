/*

Process of assembly

Assembly Text ->
	parse ->
Pseudo Instructions (isa.PInstr) ->
	resolve ->
Native Instructions (isa.Instr) ->
	encode ->
Loadable Image (entry pc word + instruction stream)

*/
package asm
