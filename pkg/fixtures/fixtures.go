// Package fixtures holds sample blueprint strings exported from the game.
//
// They serve as templates for the generators and as test input.
package fixtures

// MemoryCell is a single memory cell: read and write deciders addressed by
// signal-R and signal-W, a latch decider, an inverting arithmetic combinator
// and one medium electric pole.
const MemoryCell = "0eNrNVsFu2zAM/RceB7uIZHvdDOwndtlhKAzHZlsClmTQUrAg8L+Psrc0SZvASYF1lwQSxcdHvgfCO1h3AXsm66HcATXODlD+3MFAT7bu4p3f9gglkEcDCdjaxFOLDbXIaePMmmztHcOYANkWf0GpxocE0HryhDPadNhWNpg1sjy4hJNA7wZJdTZWF7hU5wls5T/Td4VUaYmxmeM6AWHs2XXVGp/rDUm+JP1BrSTWTkhDvH0kHnz1qrENsQ9ys+c0v0hXsaM4D1/H4aziwfQ1TyRL+CYJLvg+XAH5xIh2hu23wi5YXz2yMxVZwYHSc8BxrmrnFifiKv7MuQfDpHYaZEPcBPLTUY/JUTg/DquTcHGa/SC1dSzG2J6W0qdYovESTvJwHA8K//WAvtID+iM88P3YA+qDPfCGLK8ccE6W7KK62RmVsj19gy0Fk2InpJiatHcdvqXT6q44UmphH3ppH/oqT59zX77vq2byzwa9tLRsCamFBnwBfp8H94YZMOJUL3ZMRXzXo7hx4gGfbrfje7aOuuishYIUN64D9S/XwY//fh3kN6yD5VtcwKbPgPLgqyGBDfIwj/6Lyu+/6vtCFSr7vBrH390R3ds="

// LoaderCell is one word of a memory loader: a constant combinator holding
// the word and a decider that forwards it when signal-W matches its index.
const LoaderCell = "0eNqVk91qwzAMhd9F126Zs6bZDHuOXYwS8qO2gkQOjlwWSt59djxKGV233gRkW+ccf3LOUHceB0csYM5AjeURzMcZRjpw1cU1mQYEAyTYgwKu+li12FCLbtXYviauxDqYFRC3+AlGz+pPgWgkFctthWzeKUAWEsKUZymmkn1fowsWd4UUDHYMvZajf9BbZZvtOlcwgSn0Og9GLTls0olMRRFxtitrPFYnCgqhbU+doPuFxomc+LByiZFOrA4OkeNFGusjUl1cUdkt68zJeIxyOn5S09UtqU2pyDWeZClj9xy5/gCR3RvJLQ4PUvhWLcNeS5fYe3KjlP+m8p6IpEEtwwshh8otIQ28hQbrZfAPSOIJ3SRH4kPSHqZyQV7une1L4iAGRpzH+RHoiXJ4e8tjNVc/h4JgOCZSL3pTvGZFrnP9vH2a5y806h5c"

// Clock is the loader clock: a self-feeding decider counting on signal-W and
// a switched-off constant combinator that starts it.
const Clock = "0eNqlk9tOwzAMht/F1xmiZQeIxHNwgVDVg7tZtEmVOhPV1HfHaTZUwdiGuImUOP78239ygKLx2DkyDPoAVFrTg349QE9bkzfhjIcOQQMxtqDA5G3YVVhShW5R2rYgk7N1MCogU+EH6GRUVwGhEOeGzxPS8U0BGiYmjHqmzZAZ3xbopMQlJQo620uqNaG84Bbpcq1gAL3e3K2kSkUOyxhPVZDCzjZZgbt8T5IvSUdqJrFqIvXhtCbXc/ajsz059nLypSneWJQ7LN9DV6dmJ90itMvdJFTDsyRZz53/A/YlIrtB1HnDWe1sm5ERBmh2HsdY0cQWJ+FJWLYO0cyHSVUURK70xNM2DdbNwmKE0NJb0xO5Ps4QJ7vSi76f80uM+ptjNTWM7pfHe2WU/mjNxfd7g8vfONMrpj4Lquu86fEfxsTJBl74Rnr2bRXspe84msdkuXlKN6tklTys78fxE0HyUOw="

// MemoryPair is two wired memory cells stacked in one column.
const MemoryPair = "0eNrtWMuumzAQ/RcvK7jCBsJD6k9000UVIQJzE0tgI2OiRhH/3jG0uXkQCkRtIrWbRH6dGc85niNxJJuigUpxoUl8JDyToibxtyOp+VakhZnThwpITLiGklhEpKUZ5ZDxHJSdyXLDRaqlIq1FuMjhO4lpu7YICM01hx6tGxwS0ZQbULhhDMcilazxqBQmOsLZzLPIAf9d9uZjlJwryPp1ZhHMWCtZJBvYpXuO5/HQT9QE1/IOqTaz71zVOrm52J4r3eDMKad+h+2YG5l66NQUxzGDskpVl2RMPuMB2eiqmQG5VQCih60OmF0jdPKuZJlwgTgk1qqBto8q+it2iVPz0589KybPu0JmXGUN192QtdbFsne5TK+WV9en1xibmWAK8utQ7BoLOZ6SE25s27PAvzTAZmqAPUMDXy41QJ+sgQFabhRwjxZ3lF33DkvuKf0Sct6UNhSYlOKZXckChnhy3vwLpibeg40rObx7LzZL4/QW1xRbAN/uNrJRpl2F64FCeKdCpIrrXQkaazCta9GJiv0Afky0J4XVYHCSD/3aqBZZAcq3y4N8Wq7fR9oUHZXialr/8Bd6iPPfQy7r7Y+/vGj8AVFnjokEU03EnyaC1UIToX9TBF9f3kS8BSbyiPcHC2lznuj97PVo86fSFo4+yvAOS+ED3u/M8f5gvAO5d+8VjPcm9ze9ig6Yvztk/tFi82fRP2/+/hzzH6RogBGzb0kLmczHn+j8L9hCogUtZLphI1j32SA++8pgkT2oui99SL0gYoEX+V7gu237A6pardM="

// Operators holds one decider per comparator and one arithmetic combinator
// per operation.
const Operators = "0eNq1l91KwzAUx9/lgDfa6dLvljkQvFbwShAt/YgusKYlTcUy+gC+hRf6Yj6JSSeoo93kQK5Kkp7/+f1SaMgGsnVLa8G4hHgDLK94A/HdBhr2xNO1npNdTSEGJmkJFvC01KNUMLkqqWT5LK/KjPFUVgJ6Cxgv6AvEpLcOZhQ0ZwUV4wF2f28B5ZJJRrdEw6BLeFtmVKgO+3IsqKtGlVZcd1dxMxJa0KmnMz/1VJeCCZpv120LlLUU1TrJ6Cp9ZqpeFX2nJmqtGJIaPav3R6Z6s+a6rKxTMTSMYQF6ou5UQctl8iiqMmG8btWrUrS07/WO7DjYSAdiyGGJcHBwDnZoyOHz9QNh4SItIkMW5wgHD+ngG/sSbwgLH2kRGLN4R1gEB/6Ue0Tcf4r8BO+4NFSPkz9KVU2V0BAHxzCKHOKRbdPIJ+PIER7ZMY18No5M5njmuWnmowlmgmcmpplnE8w2mpmEppkXiwloBw8dmYZ+mGB28cy+aeaLq8sJag9PHZimXi4noH08tPFT5fb6ZoIafxYSzzT1FlpdNYarSfzrNmTBMxXNtmlI3CCyAzfy3MBz+v4LCKeZFQ=="

// SignalCompare is a single decider comparing two signals.
const SignalCompare = "0eNqVkdtKxDAQht9lrrNCd1u6G/BCX8ILkZC2Ux1ok5BDsZS8u5NWRBBEr8Ic/m/mn2zQTQmdJxNBbkC9NQHk8waBXo2eSi6uDkECRZxBgNFziQbsaUB/6u3ckdHResgCyAz4DrLKLwLQRIqEB20PVmXS3KHnht84ApwNLLWmTGfcqboKWPm91HcNTxnIY3/UzwJ44+jtpDp80wuxnkWfVMW1YSeFkh3Jh6h+GFvIx8SZr52OjtNDcRSwMP4ueiwiNuO0381IuOcem6JL/xj9dFDcyg6SiWr0dlZkmAFy1FPAnMuJ9y+R335QwII+HJe5VnV7O7f1ranb5pLzB5+lp6U="
