package cpu

// Sequencing.
var (
	// STD2 fetches the instruction at Z. It is also the entry for any
	// decode state without a definition.
	STD2 = sequence("STD2",
		at(1, on(RZ, WY12, WS, CI)),
		at(2, on(RSC, WG, NISQ)),
		at(6, on(RU, WZ)),
		at(8, on(RAD, WB, WS)),
	)

	// GOJ1 is the restart sequence.
	GOJ1 = sequence("GOJ1",
		at(2, on(RSC, WG)),
		at(8, on(RSTRT, WS, WB)),
	)
)

// Basic instructions.
var (
	TC0 = sequence("TC0",
		at(1, on(RB, WY12, CI)),
		at(2, on(RSC, WG, NISQ)),
		at(3, on(RZ, WQ)),
		at(6, on(RU, WZ)),
		at(8, on(RAD, WB, WS)),
	)

	TCF0 = sequence("TCF0",
		at(1, on(RB, WY12, CI)),
		at(2, on(RSC, WG, NISQ)),
		at(6, on(RU, WZ)),
		at(8, on(RAD, WB, WS)),
	)

	CCS0 = sequence("CCS0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(3, on(RZ, WY12)),
		at(7, on(RG, WB, TSGN, TMZ)),
		at(8, on(TPZG)),
		at(9, on(RB, WG), on(RB, WG, PONEX), on(RB, WG, PTWOX), on(RB, WG, PONEX, PTWOX)),
		at(10, on(RU, WZ, WS, ST2)),
		at(11, on(RB, WY, MONEX), on(WY), on(RC, WY, MONEX), on(WY)),
		at(12, on(RU, WA)),
	)

	DAS0 = sequence("DAS0",
		at(1, on(RL10BB, WY12, CI)),
		at(2, on(RU, WS)),
		at(3, on(RSC, WG)),
		at(5, on(RL, WY)),
		at(6, on(RG, WX)),
		at(7, on(RU, WSC, WG, TOV)),
		at(8, on(RL10BB, WS, ST1)),
		at(10, on(RA, WY), on(RA, WY, PONEX), on(RA, WY, MONEX), on(RA, WY)),
		at(11, on(RU, WA)),
	)

	DAS1 = sequence("DAS1",
		at(2, on(RSC, WG)),
		at(5, on(RG, WY, A2X)),
		at(6, on(RU, WSC, WG, TOV)),
		at(7, on(WA), on(RB1, WA), on(R1C, WA), on(WA)),
		at(8, on(RZ, WS, ST2)),
		at(9, on(WL)),
	)

	LXCH0 = sequence("LXCH0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(3, on(RL, WB)),
		at(5, on(RG, WL)),
		at(6, on(RB, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	INCR0 = sequence("INCR0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(5, on(RG, WY, PONEX)),
		at(6, on(RU, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	ADS0 = sequence("ADS0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(5, on(RG, WY, A2X)),
		at(6, on(RU, WA, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	CA0 = sequence("CA0",
		at(2, on(RSC, WG)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST2)),
		at(9, on(RB, WG)),
		at(10, on(RB, WA)),
	)

	CS0 = sequence("CS0",
		at(2, on(RSC, WG)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST2)),
		at(9, on(RB, WG)),
		at(10, on(RC, WA)),
	)

	NDX0 = sequence("NDX0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(3, on(TRSM)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST1)),
		at(9, on(RB, WG)),
	)

	NDX1 = sequence("NDX1",
		at(1, on(RZ, WY12, CI)),
		at(2, on(RSC, WG, NISQ)),
		at(6, on(RU, WZ)),
		at(7, on(RB, WY)),
		at(8, on(RG, WX)),
		at(10, on(RU, WB, WS)),
	)

	RSM3 = sequence("RSM3",
		at(1, on(R15, WS)),
		at(2, on(RSC, WG, NISQ)),
		at(5, on(RG, WZ)),
		at(8, on(RB, WS)),
	)

	DXCH0 = sequence("DXCH0",
		at(1, on(RL10BB, WS, WY12, CI)),
		at(2, on(RSC, WG)),
		at(3, on(RA, WB)),
		at(5, on(RG, WA)),
		at(6, on(RB, WSC, WG)),
		at(8, on(RU, WS, ST1)),
	)

	DXCH1 = sequence("DXCH1",
		at(2, on(RSC, WG)),
		at(3, on(RL, WB)),
		at(5, on(RG, WL)),
		at(6, on(RB, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	TS0 = sequence("TS0",
		at(1, on(RL10BB, WS)),
		at(2, on(RZ, WY12)),
		at(3, on(RA, WB, TOV)),
		at(5, on(RB, WSC, WG)),
		at(6, none, on(RB1, WA), on(R1C, WA), none),
		at(7, none, on(PONEX), on(PONEX), none),
		at(8, on(RU, WZ, WS, ST2)),
	)

	XCH0 = sequence("XCH0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(3, on(RA, WB)),
		at(5, on(RG, WA)),
		at(6, on(RB, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	AD0 = sequence("AD0",
		at(2, on(RSC, WG)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST2)),
		at(9, on(RB, WG)),
		at(10, on(RB, WY, A2X)),
		at(11, on(RU, WA)),
	)

	MASK0 = sequence("MASK0",
		at(2, on(RSC, WG)),
		at(3, on(RA, WB)),
		at(5, on(RC, WY)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST2)),
		at(9, on(RB, WG)),
		at(10, on(RU, RC, WA)),
		at(11, on(RA, WB)),
		at(12, on(RC, WA)),
	)
)

// Extended instructions.
var (
	READ0 = sequence("READ0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RCH, WA)),
		at(8, on(RZ, WS, ST2)),
	)

	WRITE0 = sequence("WRITE0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RA, WCH)),
		at(8, on(RZ, WS, ST2)),
	)

	RAND0 = sequence("RAND0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RA, WB)),
		at(7, on(RC, WY)),
		at(8, on(RCH, WB)),
		at(9, on(RC, RU, WB)),
		at(10, on(RC, WA)),
		at(11, on(RZ, WS, ST2)),
	)

	WAND0 = sequence("WAND0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RA, WB)),
		at(7, on(RC, WY)),
		at(8, on(RCH, WB)),
		at(9, on(RC, RU, WB)),
		at(10, on(RC, WA)),
		at(11, on(RA, WCH)),
		at(12, on(RZ, WS, ST2)),
	)

	ROR0 = sequence("ROR0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RA, RCH, WA)),
		at(8, on(RZ, WS, ST2)),
	)

	WOR0 = sequence("WOR0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RA, RCH, WA)),
		at(7, on(RA, WCH)),
		at(8, on(RZ, WS, ST2)),
	)

	RXOR0 = sequence("RXOR0",
		at(1, on(WS)),
		at(5, on(RL10BB, WS)),
		at(6, on(RA, WB)),
		at(7, on(RC, WY)),
		at(8, on(RCH, WB)),
		at(9, on(RC, RU, WB)),
		at(10, on(RA, RCH, WY, NEACON)),
		at(11, on(RB, WX, CI)),
		at(12, on(RU, WA, NEACOF, ST2)),
	)

	DV0 = sequence("DV0",
		at(2, on(RSC, WG)),
		at(5, on(DVSIGN)),
		at(10, on(WS, DVST)),
	)

	DV1 = sequence("DV1",
		at(2, on(DVSTEP)),
		at(5, on(DVSTEP)),
		at(8, on(DVSTEP)),
		at(10, on(DVST)),
	)

	DV3 = sequence("DV3", DV1.Steps...)
	DV7 = sequence("DV7", DV1.Steps...)
	DV6 = sequence("DV6", DV1.Steps...)

	DV4 = sequence("DV4",
		at(2, on(DVSTEP)),
		at(5, on(DVSTEP)),
		at(7, on(DVFIN)),
		at(8, on(RZ, WS, ST2)),
	)

	BZF0 = sequence("BZF0",
		at(1, on(RA, WG, TSGN, TMZ)),
		at(2, on(TPZG)),
		at(3, on(RZ, WS, ST2), on(RB, WY12, CI), on(RZ, WS, ST2), on(RB, WY12, CI)),
		at(6, none, on(RU, WZ), none, on(RU, WZ)),
		at(8, none, on(RAD, WB, WS, NISQ), none, on(RAD, WB, WS, NISQ)),
	)

	BZMF0 = sequence("BZMF0",
		at(1, on(RA, WG, TSGN, TMZ)),
		at(2, on(TPZG)),
		at(3, on(RZ, WS, ST2), on(RB, WY12, CI), on(RB, WY12, CI), on(RB, WY12, CI)),
		at(6, none, on(RU, WZ), on(RU, WZ), on(RU, WZ)),
		at(8, none, on(RAD, WB, WS, NISQ), on(RAD, WB, WS, NISQ), on(RAD, WB, WS, NISQ)),
	)

	MSU0 = sequence("MSU0",
		at(2, on(RSC, WG)),
		at(3, on(RA, WB)),
		at(5, on(RG, WY)),
		at(6, on(RC, WX, CI, NEACON)),
		at(7, on(RU, WA, TSGU, NEACOF)),
		at(8, on(RZ, WS, ST2)),
		at(9, none, none, on(RA, WY, MONEX), on(RA, WY, MONEX)),
		at(10, none, none, on(RU, WA), on(RU, WA)),
	)

	QXCH0 = sequence("QXCH0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(3, on(RQ, WB)),
		at(5, on(RG, WQ)),
		at(6, on(RB, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	AUG0 = sequence("AUG0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(5, on(RG, WY, TSGN2)),
		at(6, on(PONEX), on(MONEX)),
		at(7, on(RU, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	DIM0 = sequence("DIM0",
		at(1, on(RL10BB, WS)),
		at(2, on(RSC, WG)),
		at(5, on(RG, WY, TSGN, TMZ, TPZG)),
		at(6, on(MONEX), none, on(PONEX), none),
		at(7, on(RU, WSC, WG)),
		at(8, on(RZ, WS, ST2)),
	)

	DCA0 = sequence("DCA0",
		at(1, on(RB, WY12, CI)),
		at(2, on(RSC, WG)),
		at(5, on(RG, WA)),
		at(8, on(RU, WS, ST1)),
	)

	DCA1 = sequence("DCA1",
		at(2, on(RSC, WG)),
		at(5, on(RG, WL)),
		at(8, on(RZ, WS, ST2)),
	)

	DCS0 = sequence("DCS0",
		at(1, on(RB, WY12, CI)),
		at(2, on(RSC, WG)),
		at(5, on(RG, WB)),
		at(6, on(RC, WA)),
		at(8, on(RU, WS, ST1)),
	)

	DCS1 = sequence("DCS1",
		at(2, on(RSC, WG)),
		at(5, on(RG, WB)),
		at(6, on(RC, WL)),
		at(8, on(RZ, WS, ST2)),
	)

	NDXX0 = sequence("NDXX0",
		at(2, on(RSC, WG)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST1)),
		at(9, on(RB, WG)),
	)

	NDXX1 = sequence("NDXX1",
		at(1, on(RZ, WY12, CI)),
		at(2, on(RSC, WG, NISQ, EXT)),
		at(6, on(RU, WZ)),
		at(7, on(RB, WY)),
		at(8, on(RG, WX)),
		at(10, on(RU, WB, WS)),
	)

	SU0 = sequence("SU0",
		at(2, on(RSC, WG)),
		at(7, on(RG, WB)),
		at(8, on(RZ, WS, ST2)),
		at(9, on(RB, WG)),
		at(10, on(RC, WY, A2X)),
		at(11, on(RU, WA)),
	)

	MP0 = sequence("MP0",
		at(2, on(RSC, WG)),
		at(3, on(RA, TSGN)),
		at(5, on(RG, WB, TSGN2)),
		at(6, on(RB, WL), on(RC, WL)),
		at(7, on(RA, WB)),
		at(8, none, none, on(RC, WB), on(RC, WB)),
		at(9, on(TSGN2), on(R1C, TSGN2), on(R1C, TSGN2), on(TSGN2)),
		at(10, on(WA, WS, ST1, NEACON)),
		at(11, on(ZIP)),
		at(12, on(ZAP)),
	)

	MP1 = sequence("MP1",
		at(1, on(ZIP, ST1, ST2)),
		at(2, on(ZAP)),
		at(3, on(ZIP)),
		at(4, on(ZAP)),
		at(5, on(ZIP)),
		at(6, on(ZAP)),
		at(7, on(ZIP)),
		at(8, on(ZAP)),
		at(9, on(ZIP)),
		at(10, on(ZAP)),
		at(11, on(ZIP)),
		at(12, on(ZAP)),
	)

	MP3 = sequence("MP3",
		at(1, on(TL15)),
		at(2, on(WY, A2X), on(WY, A2X), on(RB, WY, A2X), on(RB, WY, A2X)),
		at(3, on(RU, WA, NEACOF)),
		at(4, on(RL, WL)),
		at(5, on(RA, WB)),
		at(6, none, on(RC, WA)),
		at(7, on(RL, WB)),
		at(8, none, on(RC, WL)),
		at(9, on(RZ, WS, ST2)),
	)
)

// Definitions is the Block II decode table, in declaration order. Where
// patterns overlap, the later definition wins.
var Definitions = []Definition{
	{Stage: NormalStage(2), Extend: false, Pattern: "xxxxxx", Sub: STD2},
	{Stage: NormalStage(2), Extend: true, Pattern: "xxxxxx", Sub: STD2},

	{Stage: NormalStage(0), Pattern: "000xxx", Sub: TC0},
	{Stage: NormalStage(0), Pattern: "001xxx", Sub: TCF0},
	{Stage: NormalStage(0), Pattern: "00100x", Sub: CCS0},
	{Stage: NormalStage(0), Pattern: "01000x", Sub: DAS0},
	{Stage: NormalStage(1), Pattern: "01000x", Sub: DAS1},
	{Stage: NormalStage(0), Pattern: "01001x", Sub: LXCH0},
	{Stage: NormalStage(0), Pattern: "01010x", Sub: INCR0},
	{Stage: NormalStage(0), Pattern: "01011x", Sub: ADS0},
	{Stage: NormalStage(0), Pattern: "011xxx", Sub: CA0},
	{Stage: NormalStage(0), Pattern: "100xxx", Sub: CS0},
	{Stage: NormalStage(0), Pattern: "10100x", Sub: NDX0},
	{Stage: NormalStage(1), Pattern: "10100x", Sub: NDX1},
	{Stage: NormalStage(3), Pattern: "10100x", Sub: RSM3},
	{Stage: NormalStage(0), Pattern: "10101x", Sub: DXCH0},
	{Stage: NormalStage(1), Pattern: "10101x", Sub: DXCH1},
	{Stage: NormalStage(0), Pattern: "10110x", Sub: TS0},
	{Stage: NormalStage(0), Pattern: "10111x", Sub: XCH0},
	{Stage: NormalStage(0), Pattern: "110xxx", Sub: AD0},
	{Stage: NormalStage(0), Pattern: "111xxx", Sub: MASK0},

	{Stage: NormalStage(0), Extend: true, Pattern: "000000", Sub: READ0},
	{Stage: NormalStage(0), Extend: true, Pattern: "000001", Sub: WRITE0},
	{Stage: NormalStage(0), Extend: true, Pattern: "000010", Sub: RAND0},
	{Stage: NormalStage(0), Extend: true, Pattern: "000011", Sub: WAND0},
	{Stage: NormalStage(0), Extend: true, Pattern: "000100", Sub: ROR0},
	{Stage: NormalStage(0), Extend: true, Pattern: "000101", Sub: WOR0},
	{Stage: NormalStage(0), Extend: true, Pattern: "000110", Sub: RXOR0},
	{Stage: NormalStage(0), Extend: true, Pattern: "001xxx", Sub: BZF0},
	{Stage: NormalStage(0), Extend: true, Pattern: "00100x", Sub: DV0},
	{Stage: DivideSubstage(1), Extend: true, Pattern: "00100x", Sub: DV1},
	{Stage: DivideSubstage(3), Extend: true, Pattern: "00100x", Sub: DV3},
	{Stage: DivideSubstage(7), Extend: true, Pattern: "00100x", Sub: DV7},
	{Stage: DivideSubstage(6), Extend: true, Pattern: "00100x", Sub: DV6},
	{Stage: DivideSubstage(4), Extend: true, Pattern: "00100x", Sub: DV4},
	{Stage: NormalStage(0), Extend: true, Pattern: "01000x", Sub: MSU0},
	{Stage: NormalStage(0), Extend: true, Pattern: "01001x", Sub: QXCH0},
	{Stage: NormalStage(0), Extend: true, Pattern: "01010x", Sub: AUG0},
	{Stage: NormalStage(0), Extend: true, Pattern: "01011x", Sub: DIM0},
	{Stage: NormalStage(0), Extend: true, Pattern: "011xxx", Sub: DCA0},
	{Stage: NormalStage(1), Extend: true, Pattern: "011xxx", Sub: DCA1},
	{Stage: NormalStage(0), Extend: true, Pattern: "100xxx", Sub: DCS0},
	{Stage: NormalStage(1), Extend: true, Pattern: "100xxx", Sub: DCS1},
	{Stage: NormalStage(0), Extend: true, Pattern: "101xxx", Sub: NDXX0},
	{Stage: NormalStage(1), Extend: true, Pattern: "101xxx", Sub: NDXX1},
	{Stage: NormalStage(0), Extend: true, Pattern: "110xxx", Sub: BZMF0},
	{Stage: NormalStage(0), Extend: true, Pattern: "11000x", Sub: SU0},
	{Stage: NormalStage(0), Extend: true, Pattern: "111xxx", Sub: MP0},
	{Stage: NormalStage(1), Extend: true, Pattern: "111xxx", Sub: MP1},
	{Stage: NormalStage(3), Extend: true, Pattern: "111xxx", Sub: MP3},
}
